package catalog

import "fmt"

// FetchMessage is what a viewer sees when the catalog cannot be read.
const FetchMessage = "Failed to fetch videos. Please try again later."

// FetchError reports a failed read of the catalog.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch videos: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage is the text the gallery shows instead of the list.
func (e *FetchError) UserMessage() string { return FetchMessage }

// WriteError reports a failed insert of a draft.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("add video: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError reports a failed removal.
type DeleteError struct {
	ID  string
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete video %s: %v", e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
