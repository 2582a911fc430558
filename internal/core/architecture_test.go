package core

import (
	"testing"

	"storefront/testutil"
)

// TestCoreDoesNotImportStorage keeps the service on the domain store contracts;
// backends are chosen by the caller.
func TestCoreDoesNotImportStorage(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.StorageImportForbidden, "core must depend on domain store contracts only")
}
