package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partonmc/internal/pdf"
)

func TestNewLeptonicDefaults(t *testing.T) {
	p, err := New(Config{Kind: KindLeptonic})
	require.NoError(t, err)

	l, ok := p.(*Leptonic)
	require.True(t, ok)
	assert.Equal(t, DefaultLeptonicECM, l.ECM())
	assert.Equal(t, 2.0, l.Window())

	_, ok = p.(Analytic)
	assert.True(t, ok)
}

func TestNewHadronicFromConfig(t *testing.T) {
	p, err := New(Config{Kind: KindHadronic, ECM: 13000, Window: 1.5, PDF: "builtin"})
	require.NoError(t, err)

	h, ok := p.(*Hadronic)
	require.True(t, ok)
	assert.Equal(t, 13000.0, h.ECM())
	assert.Equal(t, 1.5, h.Window())

	_, ok = p.(Analytic)
	assert.False(t, ok)
}

func TestNewMissingPDF(t *testing.T) {
	_, err := New(Config{Kind: KindHadronic, ECM: 13000, PDF: "NoSuchSet", PDFPath: []string{t.TempDir()}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pdf.ErrSetNotFound))
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Config{Kind: "ep"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown process")
}
