package password

import "testing"

func TestHashVerify(t *testing.T) {
	h := NewHasher("pepper")
	digest, err := h.Hash("Strongpass1!")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Verify("Strongpass1!", digest) {
		t.Fatal("expected verify to succeed")
	}
	if h.Verify("wrong", digest) {
		t.Fatal("expected verify to fail")
	}
}

func TestPepperMatters(t *testing.T) {
	digest, err := NewHasher("a").Hash("Strongpass1!")
	if err != nil {
		t.Fatal(err)
	}
	if NewHasher("b").Verify("Strongpass1!", digest) {
		t.Fatal("different pepper must not verify")
	}
}
