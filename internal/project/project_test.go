package project

import (
	"errors"
	"testing"
)

func TestValidateForCreate(t *testing.T) {
	p := Project{Name: "thesis"}
	if err := p.ValidateForCreate(); err != nil {
		t.Errorf("ValidateForCreate() error = %v, want nil", err)
	}

	empty := Project{}
	if err := empty.ValidateForCreate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("ValidateForCreate() error = %v, want ErrEmptyName", err)
	}
}

func TestHasPaper(t *testing.T) {
	p := Project{PaperIDs: []string{"1", "2"}}

	if !p.HasPaper("2") {
		t.Error("HasPaper(2) = false, want true")
	}
	if p.HasPaper("9") {
		t.Error("HasPaper(9) = true, want false")
	}
}
