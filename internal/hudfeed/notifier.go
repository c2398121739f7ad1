package hudfeed

import "time"

// Event kinds.
const (
	EventCorrect   = "correct"
	EventIncorrect = "incorrect"
	EventCollision = "collision"
	EventAmmo      = "ammo"
	EventLevel     = "level"
	EventScore     = "score"
)

// Event is the JSON object sent to HUD clients.
type Event struct {
	Type     string    `json:"type"`
	Level    string    `json:"level,omitempty"`
	Question string    `json:"question,omitempty"`
	Ammo     int       `json:"ammo"`
	Score    int       `json:"score,omitempty"`
	Lives    int       `json:"lives,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher accepts events without blocking.
type Publisher interface {
	Publish(Event)
}

// Notifier adapts engine notifications to Events. It satisfies
// game.Listener. It is used from the game goroutine only.
type Notifier struct {
	pub   Publisher
	level string
	now   func() time.Time
}

// NewNotifier publishes to pub.
func NewNotifier(pub Publisher) *Notifier {
	return &Notifier{pub: pub, now: time.Now}
}

// SetLevel tags later events with the level name and announces it.
func (n *Notifier) SetLevel(name, question string) {
	n.level = name
	n.emit(Event{Type: EventLevel, Question: question})
}

// Score announces the collaborator's score and lives.
func (n *Notifier) Score(score, lives int) {
	n.emit(Event{Type: EventScore, Score: score, Lives: lives})
}

func (n *Notifier) OnCorrectAnswer()   { n.emit(Event{Type: EventCorrect}) }
func (n *Notifier) OnIncorrectAnswer() { n.emit(Event{Type: EventIncorrect}) }
func (n *Notifier) OnEnemyCollision()  { n.emit(Event{Type: EventCollision}) }

func (n *Notifier) OnAmmoChanged(ammo int) {
	n.emit(Event{Type: EventAmmo, Ammo: ammo})
}

func (n *Notifier) emit(ev Event) {
	ev.Level = n.level
	ev.At = n.now()
	n.pub.Publish(ev)
}
