package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	p := NewStatic("security/lock_on_minimize")

	assert.True(t, p.IsLocked("security/lock_on_minimize"))
	assert.False(t, p.IsLocked("security/clear_clipboard"))

	p.Add("security/clear_clipboard")
	assert.True(t, p.IsLocked("security/clear_clipboard"))

	p.Remove("security/lock_on_minimize")
	assert.False(t, p.IsLocked("security/lock_on_minimize"))
}

func TestPrefix(t *testing.T) {
	p := NewPrefix("security/", "policy/")

	assert.True(t, p.IsLocked("security/lock_on_minimize"))
	assert.True(t, p.IsLocked("policy/audit"))
	assert.False(t, p.IsLocked("ui/show_tray_icon"))
	assert.False(t, p.IsLocked("securityish"))
}

func TestAny(t *testing.T) {
	p := Any{NewStatic("ui/show_tray_icon"), NewPrefix("security/")}

	assert.True(t, p.IsLocked("ui/show_tray_icon"))
	assert.True(t, p.IsLocked("security/anything"))
	assert.False(t, p.IsLocked("general/auto_save"))

	assert.False(t, Any{}.IsLocked("anything"))
}
