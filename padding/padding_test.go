package padding

import "testing"

func TestSchemeFor(t *testing.T) {
	cases := map[string]Scheme{
		"CC20": None,
		"XCCH": None,
		"SL20": None,
		"AES_": PKCS7,
		"RC2_": PKCS7,
	}
	for tag, want := range cases {
		if got := SchemeFor(tag); got != want {
			t.Errorf("SchemeFor(%q) = %v, want %v", tag, got, want)
		}
	}
}

func TestBlockSize(t *testing.T) {
	if got := BlockSize("CC20"); got != 0 {
		t.Errorf("BlockSize(CC20) = %d, want 0", got)
	}
	if got := BlockSize("AES_"); got != 16 {
		t.Errorf("BlockSize(AES_) = %d, want 16", got)
	}
}

func TestCalculatePaddingLengthPKCS7(t *testing.T) {
	tail := []byte{1, 2, 3, 4, 4, 4, 4}
	n, err := CalculatePaddingLength(tail, PKCS7, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("padding length = %d, want 4", n)
	}
}

func TestCalculatePaddingLengthRejectsOutOfRange(t *testing.T) {
	tail := []byte{1, 2, 3, 0}
	if _, err := CalculatePaddingLength(tail, PKCS7, 16); err == nil {
		t.Fatal("expected error for zero pad length")
	}

	tail2 := []byte{1, 2, 3, 17}
	if _, err := CalculatePaddingLength(tail2, PKCS7, 16); err == nil {
		t.Fatal("expected error for pad length exceeding block size")
	}
}

func TestRemovePaddingNoneIsNoop(t *testing.T) {
	buf := []byte{1, 2, 3}
	n, err := RemovePadding(buf, None, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("length = %d, want %d", n, len(buf))
	}
}

func TestRemovePaddingPKCS7(t *testing.T) {
	buf := append([]byte("hello world"), 5, 5, 5, 5, 5)
	n, err := RemovePadding(buf, PKCS7, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len("hello world") {
		t.Fatalf("length = %d, want %d", n, len("hello world"))
	}
}

func TestCalculatePaddingLengthZeroScheme(t *testing.T) {
	tail := []byte{1, 2, 0, 0, 0}
	n, err := CalculatePaddingLength(tail, Zero, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("padding length = %d, want 3", n)
	}
}
