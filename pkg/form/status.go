package form

// Status is the derived validity of a field or a form.
type Status string

const (
	StatusPending Status = "pending"
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

func (s Status) String() string { return string(s) }
