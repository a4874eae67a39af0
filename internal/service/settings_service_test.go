package service

import (
	"testing"

	"earnfast/internal/domain"
)

func TestValidateSettings(t *testing.T) {
	valid := domain.DefaultSettings()

	cases := []struct {
		name   string
		mutate func(*domain.Settings)
		ok     bool
	}{
		{"defaults are valid", func(s *domain.Settings) {}, true},
		{"zero game reward", func(s *domain.Settings) { s.GameReward = 0 }, false},
		{"negative ttt reward", func(s *domain.Settings) { s.TTTReward = -5 }, false},
		{"zero math reward", func(s *domain.Settings) { s.MathReward = 0 }, false},
		{"zero refer bonus", func(s *domain.Settings) { s.ReferBonus = 0 }, false},
		{"zero signup bonus", func(s *domain.Settings) { s.SignupBonus = 0 }, false},
		{"zero min withdraw", func(s *domain.Settings) { s.MinWithdraw = 0 }, false},
		{"no payment methods", func(s *domain.Settings) { s.PaymentMethods = nil }, false},
	}

	for _, tc := range cases {
		s := valid
		s.PaymentMethods = append([]string(nil), valid.PaymentMethods...)
		tc.mutate(&s)
		err := validateSettings(s)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err != ErrInvalidSettings {
			t.Fatalf("%s: err = %v; want ErrInvalidSettings", tc.name, err)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()
	if s.GameReward != 10 || s.TTTReward != 10 || s.MathReward != 10 {
		t.Fatalf("unexpected default rewards: %+v", s)
	}
	if s.ReferBonus != 500 || s.SignupBonus != 100 || s.MinWithdraw != 100 {
		t.Fatalf("unexpected default bonuses: %+v", s)
	}
	if len(s.PaymentMethods) == 0 {
		t.Fatal("default settings have no payment methods")
	}
}
