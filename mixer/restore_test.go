// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

func TestRestoreData_RoundTrip(t *testing.T) {
	t.Parallel()

	src := New(DefaultOptions())
	_ = src.SetVolume(33.3333333, 66.6666667)
	_ = src.SetMute(true)

	token := src.VolumeRestoreData()

	dst := New(DefaultOptions())
	if err := dst.LoadVolumeRestoreData(token); err != nil {
		t.Fatalf("LoadVolumeRestoreData(%q) error = %v", token, err)
	}

	want := src.State()
	got := dst.State()
	if !approxEqual(got.Left, want.Left, 1e-6) ||
		!approxEqual(got.Right, want.Right, 1e-6) ||
		!approxEqual(got.Balance, want.Balance, 1e-6) ||
		got.Mute != want.Mute {
		t.Errorf("restored state = %+v, want %+v", got, want)
	}
}

func TestRestoreData_BalanceSurvivesSilence(t *testing.T) {
	t.Parallel()

	src := New(DefaultOptions())
	_ = src.SetBalance(-0.75)
	_ = src.SetVolume(0, 0)

	d, err := ParseRestoreData(src.VolumeRestoreData())
	if err != nil {
		t.Fatalf("ParseRestoreData() error = %v", err)
	}
	if d.Balance != -0.75 {
		t.Errorf("Balance = %v, want -0.75", d.Balance)
	}
}

func TestRestoreData_Driver(t *testing.T) {
	t.Parallel()

	m := New(DefaultOptions())
	if got := m.RestoreData().Driver; got != "none" {
		t.Errorf("unbound Driver = %q, want none", got)
	}

	_ = m.ReinitAudio(audiotest.NewDevice("pulse", false), audiotest.NewChain())
	if got := m.RestoreData().Driver; got != DriverSoftvol {
		t.Errorf("software Driver = %q, want %q", got, DriverSoftvol)
	}

	_ = m.ReinitAudio(audiotest.NewDevice("alsa", true), nil)
	if got := m.RestoreData().Driver; got != "alsa" {
		t.Errorf("hardware Driver = %q, want alsa", got)
	}
}

func TestRestoreData_String(t *testing.T) {
	t.Parallel()

	d := RestoreData{Driver: "a:b", Left: 50, Right: 100, Balance: 0.5, Mute: true}
	want := "v1:a_b:50:100:0.5:1"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseRestoreData_Legacy(t *testing.T) {
	t.Parallel()

	d, err := ParseRestoreData("alsa:50.000000:100.000000:0")
	if err != nil {
		t.Fatalf("ParseRestoreData() error = %v", err)
	}
	if d.Driver != "alsa" || d.Left != 50 || d.Right != 100 || d.Mute {
		t.Errorf("ParseRestoreData() = %+v", d)
	}
	if !approxEqual(d.Balance, 1.0/3.0, epsilon) {
		t.Errorf("Balance = %v, want ≈0.3333", d.Balance)
	}
}

func TestParseRestoreData_Invalid(t *testing.T) {
	t.Parallel()

	tokens := []string{
		"",
		"garbage",
		"v2:softvol:1:2:0:0",
		"v1:softvol:x:2:0:0",
		"v1:softvol:1:2:0:maybe",
		"alsa:1:2",
	}

	for _, tok := range tokens {
		if _, err := ParseRestoreData(tok); !errors.Is(err, ErrInvalidRestoreData) {
			t.Errorf("ParseRestoreData(%q) error = %v, want ErrInvalidRestoreData", tok, err)
		}
	}
}

func TestParseRestoreData_Clamps(t *testing.T) {
	t.Parallel()

	d, err := ParseRestoreData("v1:softvol:-3:250:4:0")
	if err != nil {
		t.Fatalf("ParseRestoreData() error = %v", err)
	}
	if d.Left != 0 || d.Right != 100 || d.Balance != 1 {
		t.Errorf("ParseRestoreData() = %+v, want clamped values", d)
	}
}

func TestLoadVolumeRestoreData_PushesWhenBound(t *testing.T) {
	t.Parallel()

	m := New(DefaultOptions())
	dev := audiotest.NewDevice("hw", true)
	_ = m.ReinitAudio(dev, nil)

	if err := m.LoadVolumeRestoreData("v1:hw:25:75:0.5:0"); err != nil {
		t.Fatalf("LoadVolumeRestoreData() error = %v", err)
	}
	if got := lastPair(t, dev.Volumes()); got != [2]float64{25, 75} {
		t.Errorf("device volume = %v, want [25 75]", got)
	}
}

func TestLoadVolumeRestoreData_InvalidKeepsState(t *testing.T) {
	t.Parallel()

	m := New(DefaultOptions())
	_ = m.SetVolume(10, 20)

	if err := m.LoadVolumeRestoreData("nope"); err == nil {
		t.Fatal("LoadVolumeRestoreData() error = nil, want error")
	}
	if l, r := m.Volume(); l != 10 || r != 20 {
		t.Errorf("Volume() = (%v, %v), want (10, 20)", l, r)
	}
}
