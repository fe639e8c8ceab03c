package main

import "testing"

func TestResolveTestRunID(t *testing.T) {
	cases := []struct {
		flag    int64
		args    []string
		want    int64
		wantErr bool
	}{
		{flag: 12, want: 12},
		{flag: 12, args: []string{"99"}, want: 12},
		{args: []string{"99"}, want: 99},
		{want: 0},
		{args: []string{"abc"}, wantErr: true},
		{args: []string{"-4"}, wantErr: true},
		{flag: -1, wantErr: true},
	}
	for _, tc := range cases {
		got, err := resolveTestRunID(tc.flag, tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for flag=%d args=%v", tc.flag, tc.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for flag=%d args=%v: %v", tc.flag, tc.args, err)
		}
		if got != tc.want {
			t.Fatalf("flag=%d args=%v: expected %d, got %d", tc.flag, tc.args, tc.want, got)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"test-run-id", "service", "config", "fuzziness", "log-level", "report"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag --%s", name)
		}
	}
	if err := cmd.Args(cmd, []string{"1", "2"}); err == nil {
		t.Fatalf("expected error for two positional arguments")
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { _ = setLogLevel("info") })

	if err := setLogLevel("debug"); err != nil {
		t.Fatalf("setLogLevel error: %v", err)
	}
	if got := logger.GetLevel().String(); got != "debug" {
		t.Fatalf("expected debug level, got %s", got)
	}
	if err := setLogLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
