package players

type Player struct {
	ID        string
	Name      string
	Color     string
	BestScore int
	Sessions  int
}
