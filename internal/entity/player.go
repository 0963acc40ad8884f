package entity

// Players holds the symbols of player one and player two. Player one always opens.
type Players struct {
	First  Mark `json:"player1Symbol"`
	Second Mark `json:"player2Symbol"`
}

// NewPlayers assigns first to player one and the other symbol of the alphabet to player two.
func NewPlayers(first Mark) Players {
	return Players{
		First:  first,
		Second: first.Opponent(),
	}
}

func (that Players) Has(mark Mark) bool {
	return mark != EmptyCell && (mark == that.First || mark == that.Second)
}

// Other returns the symbol that moves after mark.
func (that Players) Other(mark Mark) Mark {
	if mark == that.First {
		return that.Second
	}

	return that.First
}
