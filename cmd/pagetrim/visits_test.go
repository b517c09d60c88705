package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists visits recorded by a crawl", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		db := filepath.Join(t.TempDir(), "visits.db")
		var stdout, stderr bytes.Buffer
		err := newMain("").Run(context.Background(),
			[]string{srv.URL + "/", "--output", t.TempDir(), "--rate", "0", "--db", db}, &stdout, &stderr)
		require.NoError(t, err, stderr.String())

		stdout.Reset()
		err = newMain("").Run(context.Background(), []string{"visits", "--db", db}, &stdout, &stderr)

		require.NoError(t, err, stderr.String())
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "Run run-test", lines[0])
		assert.Contains(t, lines[1], "[0] "+srv.URL+"/")
		assert.Contains(t, lines[1], "follow_all")
	})

	t.Run("filters followed visits", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		db := filepath.Join(t.TempDir(), "visits.db")
		var stdout, stderr bytes.Buffer
		err := newMain("").Run(context.Background(),
			[]string{srv.URL + "/", "--output", t.TempDir(), "--rate", "0", "--db", db}, &stdout, &stderr)
		require.NoError(t, err, stderr.String())

		stdout.Reset()
		err = newMain("").Run(context.Background(), []string{"visits", "--db", db, "--followed"}, &stdout, &stderr)

		require.NoError(t, err, stderr.String())
		assert.NotContains(t, stdout.String(), "elsewhere.invalid")
		assert.Equal(t, 2, strings.Count(stdout.String(), "follow_all"))
	})

	t.Run("reports empty log", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "visits.db")
		var stdout, stderr bytes.Buffer

		err := newMain("").Run(context.Background(), []string{"visits", "--db", db}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "No visits found.\n", stdout.String())
	})
}
