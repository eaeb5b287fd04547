package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginActionsRequireLocators(t *testing.T) {
	// A session without login locators must fail before touching the
	// browser, so these run against a bare session struct.
	session := &Session{Options: SessionOptions{
		Credentials: Credentials{Username: "qa", Password: "secret"},
	}}
	login := NewLoginActions(session)

	t.Run("username locator missing", func(t *testing.T) {
		err := login.EnterConfiguredUsername()
		assert.ErrorContains(t, err, "username locator")
	})

	t.Run("password locator missing", func(t *testing.T) {
		err := login.EnterConfiguredPassword()
		assert.ErrorContains(t, err, "password locator")
	})

	t.Run("sign-in locator missing", func(t *testing.T) {
		err := login.ClickSignIn()
		assert.ErrorContains(t, err, "sign-in locator")
	})
}
