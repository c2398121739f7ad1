package game

import (
	"fmt"
	"strings"
)

// DebugReport renders the current state plus the log tail covering the
// last lastTicks ticks as plain text for pasting into bug reports.
func (eng *Engine) DebugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	st := &eng.state
	toTick := st.Tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- QuizPursuit debug report ---\n")
	fmt.Fprintf(&b, "level=%q tick_range=[%d..%d] time=%.2fs\n", eng.level.desc.Name, fromTick, toTick, st.Time)
	fmt.Fprintf(&b, "question=%q\n", eng.level.desc.Question)
	fmt.Fprintf(&b, "frozen=%v paused=%v cleared=%v deaths=%d camera=%s\n\n",
		eng.frozen(), st.Paused, st.Cleared, st.Deaths, eng.cameraMode)

	p := &st.Player
	pc := p.Cell()
	fmt.Fprintf(&b, "== player ==\n")
	fmt.Fprintf(&b, "pos=(%.1f,%.1f) cell=(%d,%d) facing=%s dead=%v\n", p.X, p.Y, pc.X, pc.Y, p.Facing, p.Dead)
	fmt.Fprintf(&b, "grace=%.2f shield=%v(%.2f) ammo=%d answer=%s cooldown=%.2f\n\n",
		p.RespawnGrace, p.Shielded, p.ShieldTime, p.Ammo, st.Answer.State, st.Answer.Cooldown)

	fmt.Fprintf(&b, "== enemies (%d) ==\n", len(st.Enemies))
	for _, e := range st.Enemies {
		c := e.Cell()
		status := "active"
		if e.Destroyed {
			status = fmt.Sprintf("destroyed respawn=%.2f", e.RespawnTimer)
		} else if e.ThinkTimer > 0 {
			status = "thinking"
		}
		fmt.Fprintf(&b, "%-3s cell=(%d,%d) path=%d/%d %s\n",
			e.Label(), c.X, c.Y, e.PathIndex, len(e.CurrentPath), status)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "== projectiles=%d explosions=%d ==\n", len(st.Projectiles), len(st.Explosions))
	for _, pu := range st.PowerUps {
		fmt.Fprintf(&b, "powerup %-6s (%d,%d) picked=%v\n", pu.Kind, pu.Cell.X, pu.Cell.Y, pu.Picked)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "== log ==\n")
	entries := eng.log.FilterTickRange(fromTick, toTick)
	if len(entries) == 0 {
		b.WriteString("(no entries in range)\n")
	}
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
