package schema

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"prefixed", "#/definitions/User", "User"},
		{"dotted key", "#/definitions/io.k8s.api.core.v1.Pod", "io.k8s.api.core.v1.Pod"},
		{"prefix only", "#/definitions/", ""},
		{"empty", "", ""},
		{"bare key", "User", "User"},
		{"other pointer", "#/components/schemas/User", "#/components/schemas/User"},
		{"prefix not at start", "other.json#/definitions/User", "other.json#/definitions/User"},
		{"prefix stripped once", "#/definitions/#/definitions/User", "#/definitions/User"},
		{"case sensitive", "#/Definitions/User", "#/Definitions/User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRefToRoundTrip(t *testing.T) {
	for _, key := range []string{"User", "a/b", "Größe", ""} {
		if got := Resolve(RefTo(key)); got != key {
			t.Errorf("Resolve(RefTo(%q)) = %q", key, got)
		}
	}
}

func TestPropertyTarget(t *testing.T) {
	tests := []struct {
		name      string
		prop      *Property
		want      string
		wantArray bool
	}{
		{"direct", &Property{Ref: "#/definitions/A"}, "A", false},
		{"items", &Property{Type: "array", Items: &Items{Ref: "#/definitions/B"}}, "B", true},
		{"direct wins", &Property{Ref: "#/definitions/A", Items: &Items{Ref: "#/definitions/B"}}, "A", false},
		{"scalar items", &Property{Type: "array", Items: &Items{Type: "string"}}, "", false},
		{"scalar", &Property{Type: "string"}, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prop.Target(); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
			if got := tt.prop.IsArray(); got != tt.wantArray {
				t.Errorf("IsArray() = %v, want %v", got, tt.wantArray)
			}
		})
	}
}

func TestDisplayType(t *testing.T) {
	if got := (&Property{}).DisplayType(); got != "object" {
		t.Errorf("DisplayType() = %q, want object", got)
	}
	if got := (&Property{Type: "array"}).DisplayType(); got != "array" {
		t.Errorf("DisplayType() = %q, want array", got)
	}
}
