// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package password

import (
	"testing"

	fuzz "github.com/google/gofuzz"
)

func TestFromProfile(t *testing.T) {
	t.Parallel()
	type args struct {
		p *Profile
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{name: "nil", wantErr: true},
		{name: "fast", args: args{p: ProfileFast}, wantErr: false},
		{name: "balanced", args: args{p: ProfileBalanced}, wantErr: false},
		{name: "secure", args: args{p: ProfileSecure}, wantErr: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromProfile(tt.args.p)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromProfile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
		})
	}
}

func TestPresets(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		callable   func() (string, error)
		wantLength int
	}{
		{name: "fast", callable: Fast, wantLength: ProfileFast.Length},
		{name: "balanced", callable: Balanced, wantLength: ProfileBalanced.Length},
		{name: "secure", callable: Secure, wantLength: ProfileSecure.Length},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.callable()
			if err != nil {
				t.Errorf("%s() error = %v", tt.name, err)
				return
			}
			if gotLength := len(got); gotLength != tt.wantLength {
				t.Errorf("%s() expected length = %v, got %v", tt.name, tt.wantLength, gotLength)
			}
		})
	}
}

// -----------------------------------------------------------------------------
//
//nolint:errcheck
func TestGenerate_Fuzz(t *testing.T) {
	t.Parallel()
	// Making sure that it never panics regardless of the requested shape.
	for i := 0; i < 50; i++ {
		f := fuzz.New()

		var (
			length, numDigits, numSymbol int
			noUpper, allowRepeat         bool
		)
		f.Fuzz(&length)
		f.Fuzz(&numDigits)
		f.Fuzz(&numSymbol)
		f.Fuzz(&noUpper)
		f.Fuzz(&allowRepeat)

		Generate(length, numDigits, numSymbol, noUpper, allowRepeat)
	}
}

//nolint:errcheck
func TestFromProfile_Fuzz(t *testing.T) {
	t.Parallel()
	// Making sure that it never panics regardless of the requested profile.
	for i := 0; i < 50; i++ {
		f := fuzz.New()

		var p Profile
		f.Fuzz(&p)

		FromProfile(&p)
	}
}
