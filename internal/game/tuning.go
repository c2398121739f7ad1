package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileSize is the edge length of one maze cell in world units.
const TileSize = 64

// Player box geometry. The player position is the top-left of this box.
const (
	playerSize    = 44.0
	playerHalf    = playerSize / 2
	playerPadding = 14.0 // corner inset used for player wall tests
	enemySize     = 44.0
	enemyPadding  = 10.0
)

// Entity box sizes for renderers.
const (
	PlayerSize = playerSize
	EnemySize  = enemySize
)

// Tuning holds every gameplay constant the engine reads. Values are in world
// units and seconds. The zero value is not usable; start from DefaultTuning.
type Tuning struct {
	PlayerSpeed   float64 `yaml:"playerSpeed"`   // units/s
	SnapThreshold float64 `yaml:"snapThreshold"` // max perpendicular offset for corner assist
	SnapRate      float64 `yaml:"snapRate"`      // lerp rate toward corridor centre, 1/s
	TurnRate      float64 `yaml:"turnRate"`      // visual heading lerp rate, 1/s
	IntensityRate float64 `yaml:"intensityRate"` // thrust ramp, 1/s

	RespawnGrace    float64 `yaml:"respawnGrace"`    // invulnerability after (re)spawn, s
	ContactRadius   float64 `yaml:"contactRadius"`   // enemy-player kill distance
	DeathResetDelay float64 `yaml:"deathResetDelay"` // freeze before the level resets, s

	EnemySpeed       float64      `yaml:"enemySpeed"`
	PathRecompute    float64      `yaml:"pathRecompute"`    // seconds between BFS refreshes
	WaypointRadius   float64      `yaml:"waypointRadius"`   // arrival radius for path cells
	SeparationRadius float64      `yaml:"separationRadius"` // enemy-enemy repulsion range
	SeparationForce  float64      `yaml:"separationForce"`
	ThinkDelay       float64      `yaml:"thinkDelay"`   // pause after a sharp heading change, s
	EnemyRespawn     float64      `yaml:"enemyRespawn"` // 0 = destroyed enemies stay down
	Steering         SteeringMode `yaml:"steering"`
	FreezeOnCorrect  bool         `yaml:"freezeOnCorrect"`

	ProjectileSpeed    float64 `yaml:"projectileSpeed"`
	ProjectileLifetime float64 `yaml:"projectileLifetime"`
	HitRadius          float64 `yaml:"hitRadius"`

	PickupRadius   float64 `yaml:"pickupRadius"`
	ShieldDuration float64 `yaml:"shieldDuration"`
	WeaponAmmo     int     `yaml:"weaponAmmo"`

	CameraRate  float64 `yaml:"cameraRate"`
	CameraClamp bool    `yaml:"cameraClamp"`

	AnswerCooldown float64 `yaml:"answerCooldown"`
	MaxTickDelta   float64 `yaml:"maxTickDelta"`
}

// DefaultTuning returns the calibrated gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSpeed:   180,
		SnapThreshold: 22,
		SnapRate:      15,
		TurnRate:      20,
		IntensityRate: 10,

		RespawnGrace:    3.0,
		ContactRadius:   34,
		DeathResetDelay: 1.2,

		EnemySpeed:       160,
		PathRecompute:    0.4,
		WaypointRadius:   6,
		SeparationRadius: 50,
		SeparationForce:  150,
		ThinkDelay:       0.15,
		EnemyRespawn:     6,
		Steering:         SteerPursue,
		FreezeOnCorrect:  true,

		ProjectileSpeed:    600,
		ProjectileLifetime: 2.0,
		HitRadius:          40,

		PickupRadius:   30,
		ShieldDuration: 8,
		WeaponAmmo:     3,

		CameraRate:  10,
		CameraClamp: true,

		AnswerCooldown: 3.5,
		MaxTickDelta:   0.1,
	}
}

// Validate reports the first nonsensical value.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"playerSpeed", t.PlayerSpeed},
		{"enemySpeed", t.EnemySpeed},
		{"pathRecompute", t.PathRecompute},
		{"projectileSpeed", t.ProjectileSpeed},
		{"projectileLifetime", t.ProjectileLifetime},
		{"maxTickDelta", t.MaxTickDelta},
		{"cameraRate", t.CameraRate},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("tuning %s must be > 0, got %v", p.name, p.v)
		}
	}
	if t.WeaponAmmo < 0 {
		return fmt.Errorf("tuning weaponAmmo must be >= 0, got %d", t.WeaponAmmo)
	}
	// A projectile must not cross a whole tile in one clamped tick or it
	// could skip a one-cell wall.
	if t.ProjectileSpeed*t.MaxTickDelta >= TileSize {
		return fmt.Errorf("tuning projectileSpeed*maxTickDelta (%.1f) must stay below the tile size %d",
			t.ProjectileSpeed*t.MaxTickDelta, TileSize)
	}
	switch t.Steering {
	case SteerPursue, SteerDirect, SteerWander:
	default:
		return fmt.Errorf("tuning steering %q is not a known mode", t.Steering)
	}
	return nil
}

// LoadTuning reads a YAML override file. Fields absent from the file keep
// their DefaultTuning values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("failed to parse tuning YAML from %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning in %s: %w", path, err)
	}
	return t, nil
}
