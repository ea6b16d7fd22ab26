package dial

// ActionID names an accessibility action.
type ActionID string

// ActionClick has the same effect as a direct activation.
const ActionClick ActionID = "click"

// Action is an accessibility action exposed to assistive technology.
type Action struct {
	ID    ActionID
	Label string
}

// AccessibilityInfo is what the widget tells assistive technology about
// itself. The host builds one per query.
type AccessibilityInfo struct {
	Description string
	Actions     []Action
}

// AddAction appends a, replacing any existing action with the same ID.
func (i *AccessibilityInfo) AddAction(a Action) {
	for idx := range i.Actions {
		if i.Actions[idx].ID == a.ID {
			i.Actions[idx] = a
			return
		}
	}
	i.Actions = append(i.Actions, a)
}

// Action returns the action with the given ID.
func (i AccessibilityInfo) Action(id ActionID) (Action, bool) {
	for _, a := range i.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// AccessibilityDecorator fills in accessibility info for the current option.
type AccessibilityDecorator interface {
	Decorate(info *AccessibilityInfo, current Option)
}

// DecoratorFunc adapts a function to AccessibilityDecorator.
type DecoratorFunc func(info *AccessibilityInfo, current Option)

// Decorate calls f.
func (f DecoratorFunc) Decorate(info *AccessibilityInfo, current Option) {
	f(info, current)
}

// ActionPhrase returns the verb for activating the dial from current:
// "reset" when activation wraps to the first option, "change" otherwise.
func ActionPhrase(current Option) LabelID {
	if current == Last() {
		return LabelReset
	}
	return LabelChange
}

// ClickActionDecorator labels the click action with ActionPhrase.
type ClickActionDecorator struct {
	Labels Labels
}

// Decorate implements AccessibilityDecorator.
func (d ClickActionDecorator) Decorate(info *AccessibilityInfo, current Option) {
	info.AddAction(Action{
		ID:    ActionClick,
		Label: d.Labels.Label(ActionPhrase(current)),
	})
}
