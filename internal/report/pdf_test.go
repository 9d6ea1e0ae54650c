package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

func TestPDFRender(t *testing.T) {
	out, err := NewPDFRenderer("Semester schedule").Render(fixture())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFRenderEmptySchedule(t *testing.T) {
	out, err := NewPDFRenderer("").Render(&model.Schedule{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
