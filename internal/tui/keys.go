package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Check  key.Binding
	Call   key.Binding
	Fold   key.Binding
	Bid    key.Binding
	Next   key.Binding
	Quit   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Check:  key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "check")),
		Call:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "call")),
		Fold:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fold")),
		Bid:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bid")),
		Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next hand")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "place bid"), key.WithDisabled()),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"), key.WithDisabled()),
	}
}

// setBidding switches the visible bindings between the action keys and the bid prompt.
func (k *keyMap) setBidding(on bool) {
	for _, b := range []*key.Binding{&k.Check, &k.Call, &k.Fold, &k.Bid, &k.Next} {
		b.SetEnabled(!on)
	}
	k.Submit.SetEnabled(on)
	k.Cancel.SetEnabled(on)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Check, k.Call, k.Fold, k.Bid, k.Next, k.Submit, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
