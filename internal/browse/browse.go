package browse

import "github.com/pkg/browser"

// Opener navigates somewhere the user can see, normally the default browser.
type Opener interface {
	Open(url string) error
}

// Default opens URLs with the system default browser.
type Default struct{}

func (Default) Open(url string) error { return browser.OpenURL(url) }
