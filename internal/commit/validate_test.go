package commit

import (
	"testing"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

func TestValidateBlock(t *testing.T) {
	tests := []struct {
		name    string
		block   models.TimeBlock
		wantErr bool
	}{
		{
			name:  "valid block",
			block: models.TimeBlock{Identity: "Deep Work", Start: "09:00", End: "10:00"},
		},
		{
			name:    "empty identity",
			block:   models.TimeBlock{Identity: "  ", Start: "09:00", End: "10:00"},
			wantErr: true,
		},
		{
			name:    "start equals end",
			block:   models.TimeBlock{Identity: "Deep Work", Start: "09:00", End: "09:00"},
			wantErr: true,
		},
		{
			name:    "start after end",
			block:   models.TimeBlock{Identity: "Deep Work", Start: "10:00", End: "09:00"},
			wantErr: true,
		},
		{
			name:    "out of range hour",
			block:   models.TimeBlock{Identity: "Deep Work", Start: "24:00", End: "25:00"},
			wantErr: true,
		},
		{
			name:    "malformed time",
			block:   models.TimeBlock{Identity: "Deep Work", Start: "9am", End: "10:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBlock(tt.block)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBlock() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrInvalidBlock) {
				t.Errorf("validation error should wrap ErrInvalidBlock, got %v", err)
			}
		})
	}
}
