package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/vmsuarez/usermap/pkg/errors"
)

type userBody struct {
	Name string `json:"name" validate:"required,notblank"`
	Zip  string `json:"zip" validate:"required,userzip"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"Amy","zip":"60601"}`))

	var body userBody
	if err := DecodeJSONBody(r, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Name != "Amy" || body.Zip != "60601" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestDecodeJSONBodyZipRules(t *testing.T) {
	cases := []struct {
		zip string
		ok  bool
	}{
		{"1234", true},
		{"0123456789", true},
		{"123", false},
		{"12345678901", false},
		{"12a4", false},
		{"", false},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"Amy","zip":"`+tc.zip+`"}`))
		var body userBody
		err := DecodeJSONBody(r, &body)
		if tc.ok && err != nil {
			t.Errorf("zip %q: unexpected error %v", tc.zip, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("zip %q: expected error", tc.zip)
				continue
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Errorf("zip %q: expected validation error, got %v", tc.zip, err)
			}
		}
	}
}

func TestDecodeJSONBodyBlankName(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"   ","zip":"60601"}`))

	var body userBody
	if err := DecodeJSONBody(r, &body); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"Amy","zip":"60601","extra":1}`))

	var body userBody
	if err := DecodeJSONBody(r, &body); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/map?ready=true", nil)
	got, err := ParseQueryBool(r, "ready", false)
	if err != nil || !got {
		t.Fatalf("got %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/api/map", nil)
	got, err = ParseQueryBool(r, "ready", true)
	if err != nil || !got {
		t.Fatalf("default: got %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/api/map?ready=banana", nil)
	if _, err = ParseQueryBool(r, "ready", false); err == nil {
		t.Fatal("expected error for non-boolean")
	}
}
