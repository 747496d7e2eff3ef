package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-sections/internal/document"
)

const accountantResume = "JOHN DOE\nSenior Accountant\nEXPERIENCE\nAccountant, Acme Corp\n2019 – Current\nDid the books.\nEDUCATION\nBSc Accounting, State University\n2015 – 2019"

// testCommand returns a bare command writing to the returned buffer
func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeTestDocument(t *testing.T, dir string) (string, *document.Document) {
	t.Helper()
	doc := document.Import(accountantResume, "en")
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, writeDocument(path, doc))
	return path, doc
}
