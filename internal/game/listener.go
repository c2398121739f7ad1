package game

// Listener receives engine notifications. The engine never touches score,
// lives or level index; those belong to whoever implements Listener.
// Calls happen synchronously inside Tick and must not call back into the
// engine.
type Listener interface {
	OnCorrectAnswer()
	OnIncorrectAnswer()
	OnEnemyCollision()
	OnAmmoChanged(ammo int)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnCorrectAnswer()   {}
func (NopListener) OnIncorrectAnswer() {}
func (NopListener) OnEnemyCollision()  {}
func (NopListener) OnAmmoChanged(int)  {}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Correct   func()
	Incorrect func()
	Collision func()
	Ammo      func(int)
}

func (f ListenerFuncs) OnCorrectAnswer() {
	if f.Correct != nil {
		f.Correct()
	}
}

func (f ListenerFuncs) OnIncorrectAnswer() {
	if f.Incorrect != nil {
		f.Incorrect()
	}
}

func (f ListenerFuncs) OnEnemyCollision() {
	if f.Collision != nil {
		f.Collision()
	}
}

func (f ListenerFuncs) OnAmmoChanged(ammo int) {
	if f.Ammo != nil {
		f.Ammo(ammo)
	}
}

// Listeners fans every notification out in order.
type Listeners []Listener

func (ls Listeners) OnCorrectAnswer() {
	for _, l := range ls {
		l.OnCorrectAnswer()
	}
}

func (ls Listeners) OnIncorrectAnswer() {
	for _, l := range ls {
		l.OnIncorrectAnswer()
	}
}

func (ls Listeners) OnEnemyCollision() {
	for _, l := range ls {
		l.OnEnemyCollision()
	}
}

func (ls Listeners) OnAmmoChanged(ammo int) {
	for _, l := range ls {
		l.OnAmmoChanged(ammo)
	}
}
