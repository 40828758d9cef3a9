package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() on empty keyring = %v, want ErrNotFound", err)
	}

	if err := SetConnectionString("postgres://localhost/blockday?sslmode=disable"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != "postgres://localhost/blockday?sslmode=disable" {
		t.Errorf("GetConnectionString() = %q", got)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete = %v, want ErrNotFound", err)
	}
}

func TestSetConnectionStringRejectsEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should fail")
	}
}
