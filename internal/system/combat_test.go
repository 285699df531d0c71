package system

import (
	"math"
	"math/rand"
	"testing"
)

func TestResolveAttackDamage(t *testing.T) {
	cases := []struct {
		name          string
		sword, armour bool
		want          int
	}{
		{"bare hands", false, false, 1},
		{"sword", true, false, 2},
		{"armour", false, true, 0},
		{"sword vs armour", true, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			hits := 0
			for i := 0; i < 100; i++ {
				hit, dmg := ResolveAttack(tc.sword, tc.armour, rng)
				if !hit {
					if dmg != 0 {
						t.Fatalf("miss dealt %d damage", dmg)
					}
					continue
				}
				hits++
				if dmg != tc.want {
					t.Fatalf("damage = %d, want %d", dmg, tc.want)
				}
			}
			if hits == 0 {
				t.Fatal("expected at least one hit in 100 rolls")
			}
		})
	}
}

func TestResolveAttackHitRate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const trials = 1000
	hits := 0
	for i := 0; i < trials; i++ {
		if hit, _ := ResolveAttack(false, false, rng); hit {
			hits++
		}
	}
	p := float64(AttackFaces-MissFaces) / AttackFaces
	// Five standard deviations of a binomial with n=1000.
	tolerance := 5 * math.Sqrt(p*(1-p)/trials)
	rate := float64(hits) / trials
	if math.Abs(rate-p) > tolerance {
		t.Errorf("hit rate %.3f, want %.3f ± %.3f", rate, p, tolerance)
	}
}
