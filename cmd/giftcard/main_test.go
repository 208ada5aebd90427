package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandRunsMenuFromFlags(test *testing.T) {
	output := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--id-seed", "7", "--log-level", "error"})
	cmd.SetIn(strings.NewReader("1\n1234\n8\n"))
	cmd.SetOut(output)
	if err := cmd.Execute(); err != nil {
		test.Fatalf("execute: %v", err)
	}
	if !strings.Contains(output.String(), "Gift card created successfully") {
		test.Fatalf("unexpected output:\n%s", output.String())
	}
}

func TestRootCommandReadsEnvironment(test *testing.T) {
	test.Setenv("GIFTCARD_LOG_ENCODING", "yaml")
	cmd := newRootCommand()
	cmd.SetArgs([]string{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "log encoding") {
		test.Fatalf("expected log encoding error from environment, got %v", err)
	}
}
