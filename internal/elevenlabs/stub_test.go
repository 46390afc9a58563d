package elevenlabs

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func readStub(t *testing.T, stub *StubProvider, voiceID, text string) []byte {
	t.Helper()
	rc, err := stub.SynthesizeStream(context.Background(), voiceID, SynthesizeRequest{Text: text})
	if err != nil {
		t.Fatalf("SynthesizeStream(%q): %v", text, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return data
}

func TestStubProviderSynthesizeSize(t *testing.T) {
	stub := NewStubProvider(nil)
	for _, text := range []string{"hi", "hello", "a much longer podcast line for proportional output"} {
		got := readStub(t, stub, "voice-1", text)
		if len(got) != len(text)*320 {
			t.Errorf("%q: got %d bytes, want %d", text, len(got), len(text)*320)
		}
	}
}

func TestStubProviderSynthesizeDeterministic(t *testing.T) {
	stub := NewStubProvider(nil)
	first := readStub(t, stub, "voice-1", "deterministic test")
	second := readStub(t, stub, "voice-1", "deterministic test")
	if !bytes.Equal(first, second) {
		t.Fatal("stub output differs between identical calls")
	}
}

func TestStubProviderSynthesizeValidation(t *testing.T) {
	stub := NewStubProvider(nil)
	if _, err := stub.SynthesizeStream(context.Background(), "voice-1", SynthesizeRequest{}); err == nil {
		t.Error("expected error for empty text")
	}
	if _, err := stub.SynthesizeStream(context.Background(), "", SynthesizeRequest{Text: "hello"}); err == nil {
		t.Error("expected error for empty voiceID")
	}
}

func TestStubProviderGetVoice(t *testing.T) {
	stub := NewStubProvider(nil)
	voice, err := stub.GetVoice(context.Background(), "Rachel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if voice.VoiceID != "Rachel" {
		t.Errorf("VoiceID = %q, want %q", voice.VoiceID, "Rachel")
	}
	if voice.Settings == nil || voice.Settings.Stability == nil || *voice.Settings.Stability != 0.5 {
		t.Fatalf("Settings = %+v, want stub defaults", voice.Settings)
	}

	// Each call hands out its own settings record.
	*voice.Settings.Stability = 0.9
	again, _ := stub.GetVoice(context.Background(), "Rachel")
	if *again.Settings.Stability != 0.5 {
		t.Errorf("stub defaults were mutated through a previous result: %v", *again.Settings.Stability)
	}
}

func TestStubProviderGetVoiceEmptyID(t *testing.T) {
	stub := NewStubProvider(nil)
	if _, err := stub.GetVoice(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty voiceID")
	}
}
