package activity

import "fmt"

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	RunID        string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}

// Validate rejects negative paging and unknown types. Zero Limit means no
// limit.
func (o ListActivityOptions) Validate() error {
	if o.Limit < 0 || o.Offset < 0 {
		return fmt.Errorf("%w: negative limit or offset", ErrInvalidInput)
	}
	if o.ActivityType != nil && !o.ActivityType.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, *o.ActivityType)
	}
	return nil
}
