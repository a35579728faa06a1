package platform_test

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/internal/testutil"
)

func TestContext(t *testing.T) {
	tests := []struct {
		name    string
		host    func() platform.Host
		wantErr error
	}{
		{
			name: "found",
			host: func() platform.Host { return testutil.NewHost(platform.DefaultCanvasID) },
		},
		{
			name:    "nil_host",
			host:    func() platform.Host { return nil },
			wantErr: core.ErrNotFound,
		},
		{
			name:    "no_window",
			host:    func() platform.Host { return &testutil.Host{} },
			wantErr: core.ErrNotFound,
		},
		{
			name: "no_document",
			host: func() platform.Host {
				h := testutil.NewHost(platform.DefaultCanvasID)
				h.Win.Doc = nil
				return h
			},
			wantErr: core.ErrNotFound,
		},
		{
			name:    "no_element",
			host:    func() platform.Host { return testutil.NewHost("other") },
			wantErr: core.ErrNotFound,
		},
		{
			name: "not_drawable",
			host: func() platform.Host {
				h := testutil.NewHost(platform.DefaultCanvasID)
				h.Win.Doc.Elements[platform.DefaultCanvasID].Ctx = nil
				return h
			},
			wantErr: core.ErrNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx, err := platform.Context(test.host(), platform.DefaultCanvasID)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("unexpected error: got:%v want:%v", err, test.wantErr)
			}
			if test.wantErr == nil && ctx == nil {
				t.Error("expected a context")
			}
			if test.wantErr != nil && ctx != nil {
				t.Errorf("unexpected context on failure: %v", ctx)
			}
		})
	}
}
