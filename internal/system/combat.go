package system

import "math/rand"

// An attack roll draws one of AttackFaces equally likely outcomes; the lowest
// MissFaces miss, so roughly 69% of attacks hit.
const (
	AttackFaces = 13
	MissFaces   = 4
)

// ResolveAttack rolls one attack.
// Damage on a hit is 1, +1 when the attacker holds a sword, -1 when the
// defender wears armour. A sword against armour therefore deals 1 and a bare
// hand against armour deals 0.
func ResolveAttack(attackerHasSword, defenderHasArmour bool, rng *rand.Rand) (hit bool, damage int) {
	if rng.Intn(AttackFaces) < MissFaces {
		return false, 0
	}
	damage = 1
	if attackerHasSword {
		damage++
	}
	if defenderHasArmour {
		damage--
	}
	return true, damage
}
