// Package testing provides helpers for testing domkit widgets: a Tester
// that produces, mounts and drives render trees against a recording host,
// finders for locating nodes, and JSON golden snapshots.
//
// # Quick Start
//
//	func TestSaveButton(t *testing.T) {
//	    tester := dktest.NewTesterWithT(t, theme.Default())
//	    _ = tester.PumpWidget(MyToolbar())
//
//	    _ = tester.Click(dktest.ByText("Save"))
//	    if !tester.Find(dktest.ByAttr("aria-pressed", "true")).Exists() {
//	        t.Error("expected pressed state")
//	    }
//	}
//
// # Snapshot Testing
//
//	dktest.CaptureSnapshot(tester.Root()).MatchesFile(t, "testdata/toolbar.snapshot.json")
//
// Update snapshots with:
//
//	DOMKIT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import dktest "github.com/go-drift/domkit/pkg/testing"
package testing
