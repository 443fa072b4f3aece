package resource_test

import (
	"testing"

	"kweku/internal/domain/resource"
)

// TestResource_Validate tests validation of Resource.
func TestResource_Validate(t *testing.T) {
	valid := resource.Resource{
		ID:           "1",
		Title:        "Algebra formula sheet",
		ResourceType: "notes",
		FileURL:      "https://example.com/algebra.pdf",
	}

	tests := []struct {
		name    string
		mutate  func(*resource.Resource)
		wantErr error
	}{
		{name: "valid resource", mutate: func(r *resource.Resource) {}, wantErr: nil},
		{name: "empty title", mutate: func(r *resource.Resource) { r.Title = "" }, wantErr: resource.ErrEmptyTitle},
		{name: "empty type", mutate: func(r *resource.Resource) { r.ResourceType = "" }, wantErr: resource.ErrEmptyType},
		{name: "empty file url", mutate: func(r *resource.Resource) { r.FileURL = "" }, wantErr: resource.ErrEmptyFileURL},
		{name: "negative downloads", mutate: func(r *resource.Resource) { r.Downloads = -1 }, wantErr: resource.ErrNegativeDownloads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
