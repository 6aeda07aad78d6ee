package app

import (
	"testing"

	"go.uber.org/fx"
)

func TestApp_GraphIsComplete(t *testing.T) {
	if err := fx.ValidateApp(App); err != nil {
		t.Fatalf("Invalid dependency graph: %v", err)
	}
}
