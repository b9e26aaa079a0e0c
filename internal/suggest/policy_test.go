package suggest

import "testing"

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantQuota bool
		wantErr   bool
	}{
		{name: "simple", input: "simple", wantName: PolicySimple},
		{name: "diversity", input: "Diversity", wantName: PolicyDiversity, wantQuota: true},
		{name: "empty defaults to diversity", input: "", wantName: PolicyDiversity, wantQuota: true},
		{name: "unknown", input: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PolicyByName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PolicyByName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Name != tt.wantName {
				t.Errorf("PolicyByName() name = %q, want %q", p.Name, tt.wantName)
			}
			if (p.Quota != nil) != tt.wantQuota {
				t.Errorf("PolicyByName() quota = %v, want quota %v", p.Quota, tt.wantQuota)
			}
		})
	}
}

func TestQuotaPolicy_Allows(t *testing.T) {
	q := DiversityPolicy().Quota

	tests := []struct {
		name     string
		category Category
		count    int
		limit    int
		want     bool
	}{
		{"blog under cap", CategoryBlog, 1, 5, true},
		{"blog at cap", CategoryBlog, 2, 5, false},
		{"product under fractional cap", CategoryProduct, 2, 5, true},
		{"product at cap", CategoryProduct, 3, 5, false},
		{"limit one allows first blog", CategoryBlog, 0, 1, true},
		{"limit one blocks second blog", CategoryBlog, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.allows(tt.category, tt.count, tt.limit); got != tt.want {
				t.Errorf("allows(%s, %d, %d) = %v, want %v", tt.category, tt.count, tt.limit, got, tt.want)
			}
		})
	}

	exempt := &QuotaPolicy{Default: 0.1, Exempt: []Category{CategoryGuide}}
	if !exempt.allows(CategoryGuide, 100, 5) {
		t.Error("exempt category should never be capped")
	}
}
