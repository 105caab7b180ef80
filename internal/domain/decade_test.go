package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecadesChronological(t *testing.T) {
	got := Decades()
	require.Len(t, got, 7)
	require.Equal(t, Decade1950s, got[0])
	require.Equal(t, Decade2010s, got[len(got)-1])
	for i := 1; i < len(got); i++ {
		require.Less(t, string(got[i-1]), string(got[i]))
	}
}

func TestDecadesReturnsCopy(t *testing.T) {
	got := Decades()
	got[0] = "1850s"
	require.Equal(t, Decade1950s, Decades()[0])
}

func TestParseDecade(t *testing.T) {
	tests := []struct {
		in      string
		want    Decade
		wantErr bool
	}{
		{in: "1980s", want: Decade1980s},
		{in: " 1990S ", want: Decade1990s},
		{in: "2010s", want: Decade2010s},
		{in: "1940s", wantErr: true},
		{in: "", wantErr: true},
		{in: "80s", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDecade(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownDecade)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
