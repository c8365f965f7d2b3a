package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tivins/php-solid/internal/analyzer"
	"github.com/tivins/php-solid/internal/crawler"
	"github.com/tivins/php-solid/internal/rules"
)

func sample() *Report {
	return FromResult(&analyzer.Result{
		Lsp: []rules.LspViolation{
			{Class: "App\\Kennel", Method: "adopt", Contract: "App\\Shelter",
				Reason: "throws RuntimeException which contract App\\Shelter does not declare", Details: "via App\\Kennel::adopt -> App\\Kennel::fetch"},
		},
		Isp: []rules.IspViolation{
			{Class: "App\\NullStorage", Interface: "App\\Storage", Reason: "method write has an empty body"},
		},
		Errors:         []analyzer.ClassError{{Class: "App\\Ghost", Err: analyzer.ErrClassNotFound}},
		ClassesChecked: 3,
	}, []crawler.LoadError{
		{Path: "src/broken.php", Err: errors.New("read failed")},
	})
}

func TestFromResult(t *testing.T) {
	r := sample()

	assert.Equal(t, 2, r.Total())
	assert.Equal(t, 3, r.ClassesChecked)
	assert.Equal(t, 1, r.FailedClasses, "load errors do not count as failed classes")
	require.Len(t, r.Errors, 2)
	assert.Equal(t, "src/broken.php", r.Errors[0].File)
	assert.Equal(t, "App\\Ghost", r.Errors[1].Class)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sample()))
	out := buf.String()

	assert.Contains(t, out, "LSP violations (1):")
	assert.Contains(t, out, "App\\Kennel::adopt [contract App\\Shelter]")
	assert.Contains(t, out, "via App\\Kennel::adopt -> App\\Kennel::fetch")
	assert.Contains(t, out, "ISP violations (1):")
	assert.Contains(t, out, "Errors (2):")
	assert.Contains(t, out, "Checked 3 classes: 2 violations, 1 failed.")
}

func TestWriteText_CleanRunIsOneSummaryLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, &Report{ClassesChecked: 7}))
	assert.Equal(t, "Checked 7 classes: 0 violations, 0 failed.\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample().Lsp, decoded.Lsp)
	assert.Equal(t, sample().Isp, decoded.Isp)
	assert.Equal(t, 3, decoded.ClassesChecked)
}
