package fidelity

import "fmt"

type Action int
type Unit int

const (
	ActionBuy Action = iota
	ActionSell
)

const (
	UnitShares Unit = iota
	UnitDollars
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

func (a Action) validate() error {
	switch a {
	case ActionBuy, ActionSell:
		return nil
	default:
		return fmt.Errorf("action must be ActionBuy or ActionSell, got %v", a)
	}
}

func (u Unit) String() string {
	switch u {
	case UnitShares:
		return "shares"
	case UnitDollars:
		return "dollars"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

func (u Unit) validate() error {
	switch u {
	case UnitShares, UnitDollars:
		return nil
	default:
		return fmt.Errorf("unit must be UnitShares or UnitDollars, got %v", u)
	}
}
