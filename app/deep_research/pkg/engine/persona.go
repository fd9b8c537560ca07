package engine

import "fmt"

// Persona 对话角色
type Persona string

const (
	PersonaResearch Persona = "research"
	PersonaRisk     Persona = "risk"
)

// ParsePersona 空字符串视为 research
func ParsePersona(s string) (Persona, error) {
	switch Persona(s) {
	case "", PersonaResearch:
		return PersonaResearch, nil
	case PersonaRisk:
		return PersonaRisk, nil
	default:
		return "", fmt.Errorf("unknown persona %q (want %s or %s)", s, PersonaResearch, PersonaRisk)
	}
}
