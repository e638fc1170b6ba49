package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    [3]string // name, idNumber, expiry
		wantErr bool
	}{
		{
			name:    "bare JSON",
			content: `{"name":"Jane Doe","idNumber":"AB1234","expiry":"2030-01-01"}`,
			want:    [3]string{"Jane Doe", "AB1234", "2030-01-01"},
		},
		{
			name:    "markdown code fence",
			content: "```json\n{\"name\":\"Jane Doe\",\"idNumber\":\"AB1234\",\"expiry\":\"2030-01-01\"}\n```",
			want:    [3]string{"Jane Doe", "AB1234", "2030-01-01"},
		},
		{
			name:    "surrounding prose",
			content: `Here are the extracted details: {"name":"Jane Doe","idNumber":"Not found","expiry":"Not found"} Let me know if you need anything else.`,
			want:    [3]string{"Jane Doe", "Not found", "Not found"},
		},
		{
			name:    "no JSON object",
			content: "I cannot read this image.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			content: `{"name": "Jane`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDetails(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want[0], got.Name)
			assert.Equal(t, tt.want[1], got.IDNumber)
			assert.Equal(t, tt.want[2], got.Expiry)
		})
	}
}

func TestStripDataURL(t *testing.T) {
	assert.Equal(t, "aGVsbG8=", stripDataURL("data:image/jpeg;base64,aGVsbG8="))
	assert.Equal(t, "aGVsbG8=", stripDataURL("aGVsbG8="))
	// A comma in raw base64 padding-free input without a data: prefix is kept.
	assert.Equal(t, "abc,def", stripDataURL("abc,def"))
}
