package codec_test

import (
	"testing"

	"github.com/illmade-knight/go-resource/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	APIKey  string   `json:"api_key" yaml:"api_key"`
	Timeout int      `json:"timeout" yaml:"timeout"`
	Hosts   []string `json:"hosts,omitempty" yaml:"hosts,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		value, err := codec.Decode[testConfig]([]byte(`{"api_key":"x","timeout":5}`), codec.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, testConfig{APIKey: "x", Timeout: 5}, value)
	})

	t.Run("YAML", func(t *testing.T) {
		value, err := codec.Decode[testConfig]([]byte("api_key: x\ntimeout: 5\n"), codec.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, testConfig{APIKey: "x", Timeout: 5}, value)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := codec.Decode[testConfig]([]byte(`{"api_key":`), codec.FormatJSON)
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrMalformed)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := codec.Decode[testConfig]([]byte("api_key: [unclosed"), codec.FormatYAML)
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrMalformed)
	})

	t.Run("Reserved formats fail predictably", func(t *testing.T) {
		for _, format := range []codec.Format{codec.FormatTOML, codec.FormatText} {
			_, err := codec.Decode[testConfig]([]byte("anything"), format)
			require.Error(t, err)
			assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
			assert.NotErrorIs(t, err, codec.ErrMalformed)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Run("Reserved formats fail predictably", func(t *testing.T) {
		for _, format := range []codec.Format{codec.FormatTOML, codec.FormatText} {
			_, err := codec.Encode(testConfig{}, format)
			require.Error(t, err)
			assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	representative := []testConfig{
		{},
		{APIKey: "x", Timeout: 5},
		{APIKey: "multi\nline", Timeout: -1, Hosts: []string{"a.example", "b.example"}},
	}

	for _, format := range []codec.Format{codec.FormatJSON, codec.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			for _, value := range representative {
				data, err := codec.Encode(value, format)
				require.NoError(t, err)

				decoded, err := codec.Decode[testConfig](data, format)
				require.NoError(t, err)
				assert.Equal(t, value, decoded)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]codec.Format{
		"json": codec.FormatJSON,
		"yaml": codec.FormatYAML,
		"yml":  codec.FormatYAML,
		"YAML": codec.FormatYAML,
		"toml": codec.FormatTOML,
		"text": codec.FormatText,
	}
	for name, want := range cases {
		got, err := codec.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := codec.ParseFormat("csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}
