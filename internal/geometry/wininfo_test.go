package geometry

import "testing"

func TestInitRejectedAfterFreeze(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	if err := Init(Size{Width: 1920, Height: 1080, Force: true}, Size{Width: 120, Height: 30, Force: true}, 1, false, false); err != nil {
		t.Fatalf("first Init should succeed: %v", err)
	}

	win := Get()
	if win.SpxWidth != 1920 || win.ScWidth != 120 {
		t.Fatalf("unexpected Wininfo: %+v", win)
	}

	if err := Init(Size{Width: 1, Height: 1}, Size{Width: 1, Height: 1}, 1, false, false); err == nil {
		t.Fatal("Init after Get should fail")
	}

	// Value must stay frozen.
	if win2 := Get(); win2 != win {
		t.Fatalf("Wininfo changed after freeze: %+v vs %+v", win, win2)
	}
}

func TestCapabilityDetection(t *testing.T) {
	ResetForTest()

	env := &EnvIdentifiers{data: map[string]string{"KITTY_WINDOW_ID": "1"}}
	if got := DetectCapability(env); got != EncoderKitty {
		t.Errorf("expected kitty, got %v", got)
	}

	env = &EnvIdentifiers{data: map[string]string{"TERM_PROGRAM": "wezterm"}}
	if got := DetectCapability(env); got != EncoderITerm {
		t.Errorf("expected iterm, got %v", got)
	}

	env = &EnvIdentifiers{data: map[string]string{"TERM": "xterm-sixel"}}
	if got := DetectCapability(env); got != EncoderSixel {
		t.Errorf("expected sixel, got %v", got)
	}

	env = &EnvIdentifiers{data: map[string]string{}}
	if got := DetectCapability(env); got != EncoderASCII {
		t.Errorf("expected ascii, got %v", got)
	}
}
