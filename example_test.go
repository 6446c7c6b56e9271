package optlist_test

import (
	"context"
	"fmt"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/domain"
)

// Example demonstrates the basic lifecycle: bind options, link them,
// toggle, and commit.
func Example() {
	type prefs struct {
		RememberLast bool
		OpenLast     bool
	}
	p := &prefs{RememberLast: true, OpenLast: true}

	panel := optlist.New()

	remember, _ := domain.BindField(p, "RememberLast")
	open, _ := domain.BindField(p, "OpenLast")

	panel.CreateItem(remember, "startup", "Remember last opened file", "startup/remember_last")
	panel.CreateItem(open, "startup", "Open last file on start", "startup/open_last")

	// Opening the last file requires remembering it.
	panel.AddLink("startup/remember_last", "startup/open_last", domain.LinkUncheckedUnchecked)

	panel.SetChecked("startup/remember_last", false)
	panel.Commit(context.Background())

	fmt.Println("remember:", p.RememberLast)
	fmt.Println("open:", p.OpenLast)
	// Output:
	// remember: false
	// open: false
}
