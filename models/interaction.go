package models

import (
	"fmt"
	"time"
)

// LocatorStrategy names how an InteractionStep finds its target elements.
type LocatorStrategy string

const (
	LocateCSS      LocatorStrategy = "css"
	LocateXPath    LocatorStrategy = "xpath"
	LocateID       LocatorStrategy = "id"
	LocateClass    LocatorStrategy = "class"
	LocateTag      LocatorStrategy = "tag"
	LocateName     LocatorStrategy = "name"
	LocateLinkText LocatorStrategy = "link_text"
)

// Locator is a strategy plus the value interpreted under it.
type Locator struct {
	By    LocatorStrategy `json:"by"`
	Value string          `json:"value"`
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.By, l.Value)
}

// Validate checks that the locator can be resolved by a browser driver.
func (l Locator) Validate() error {
	switch l.By {
	case LocateCSS, LocateXPath, LocateID, LocateClass, LocateTag, LocateName, LocateLinkText:
	default:
		return NewError(KindInvalidInput, fmt.Sprintf("unknown locator strategy %q", l.By), nil)
	}
	if l.Value == "" {
		return NewError(KindInvalidInput, "locator value is empty", nil)
	}
	return nil
}

// InteractionStep describes one click performed after a page has loaded:
// the Index-th element matched by Locator is scrolled into view and clicked,
// then the fetcher waits Wait.
//
// Backup, when set, is clicked (every match) as a recovery action before
// the step is retried.
type InteractionStep struct {
	Locator Locator       `json:"locator"`
	Index   int           `json:"index,omitempty"`
	Wait    time.Duration `json:"wait,omitempty"`
	Backup  *Locator      `json:"backup,omitempty"`
}

// Click is a shorthand for the common single-element CSS click.
func Click(selector string, wait time.Duration) InteractionStep {
	return InteractionStep{
		Locator: Locator{By: LocateCSS, Value: selector},
		Wait:    wait,
	}
}

// WithBackup returns a copy of the step with a backup locator attached.
func (s InteractionStep) WithBackup(backup Locator) InteractionStep {
	s.Backup = &backup
	return s
}

// Validate checks the step's locators and index.
func (s InteractionStep) Validate() error {
	if err := s.Locator.Validate(); err != nil {
		return err
	}
	if s.Index < 0 {
		return NewError(KindInvalidInput, fmt.Sprintf("negative element index %d", s.Index), nil)
	}
	if s.Backup != nil {
		return s.Backup.Validate()
	}
	return nil
}
