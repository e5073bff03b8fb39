// Package replies classifies inbound WhatsApp replies and applies their
// side effects.
package replies

import (
	"strings"

	"reactivation/internal/domain"
)

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var (
	negationWords = set("nao", "nunca", "jamais")

	// "para" is left out: as a preposition it is far more common than the verb.
	stopWords = set(
		"pare", "parar", "parem", "remover", "remova", "remove", "tirar", "tire",
		"sair", "bloquear", "bloqueia", "deletar", "desistir", "desisti",
		"cancelar", "cancela", "descadastrar",
	)

	interestWords = set(
		"sim", "quero", "topo", "aceito", "interessado", "interessada", "bora",
		"vamos", "pode", "beleza", "ok", "legal", "gostei", "adorei", "vou",
		"irei", "fechado", "claro",
	)

	questionWords = set("como", "quando", "onde", "quanto", "quanta", "quantos", "quantas", "qual", "quais", "porque")
)

// Classify maps any text to exactly one intent. Opt-out is checked first and
// needs both a negation and a stop-action word; an interest word directly
// preceded by a negation ("não quero") does not count as interest.
func Classify(text string) domain.Intent {
	tokens := domain.Tokens(text)

	var negated, stop, interested, question bool
	for i, tok := range tokens {
		switch {
		case negationWords[tok]:
			negated = true
		case stopWords[tok]:
			stop = true
		case interestWords[tok]:
			if i == 0 || !negationWords[tokens[i-1]] {
				interested = true
			}
		case questionWords[tok]:
			question = true
		case tok == "que" && i > 0 && tokens[i-1] == "por":
			question = true
		}
	}
	switch {
	case negated && stop:
		return domain.IntentOptOut
	case interested:
		return domain.IntentInterested
	case question || strings.Contains(text, "?"):
		return domain.IntentQuestion
	default:
		return domain.IntentNeutral
	}
}
