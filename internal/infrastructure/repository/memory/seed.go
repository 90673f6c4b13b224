package memory

import "github.com/riskibarqy/gmmode/internal/domain/player"

// SeedPlayers is a demo roster with enough depth to fill one full lineup and
// part of a second.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "demo-c-01", FirstName: "Nolan", LastName: "Archer", Number: 19, Position: player.PositionCenter, Overall: 91, ContractTerm: 6, Salary: 10.5},
		{ID: "demo-c-02", FirstName: "Elias", LastName: "Brandt", Number: 29, Position: player.PositionCenter, Overall: 84, ContractTerm: 4, Salary: 6.25},
		{ID: "demo-c-03", FirstName: "Mason", LastName: "Cole", Number: 14, Position: player.PositionCenter, Overall: 77, ContractTerm: 2, Salary: 2.1},
		{ID: "demo-c-04", FirstName: "Owen", LastName: "Dufresne", Number: 46, Position: player.PositionCenter, Overall: 70, ContractTerm: 1, Salary: 0.9},
		{ID: "demo-lw-01", FirstName: "Jonas", LastName: "Eklund", Number: 11, Position: player.PositionLeftWing, Overall: 88, ContractTerm: 5, Salary: 8.0},
		{ID: "demo-lw-02", FirstName: "Tyler", LastName: "Ferris", Number: 21, Position: player.PositionLeftWing, Overall: 80, ContractTerm: 3, Salary: 3.4},
		{ID: "demo-lw-03", FirstName: "Luca", LastName: "Gagnon", Number: 63, Position: player.PositionLeftWing, Overall: 74, ContractTerm: 2, Salary: 1.2},
		{ID: "demo-lw-04", FirstName: "Ryan", LastName: "Hale", Number: 58, Position: player.PositionLeftWing, Overall: 68, ContractTerm: 1, Salary: 0.825},
		{ID: "demo-rw-01", FirstName: "Mikko", LastName: "Ilves", Number: 88, Position: player.PositionRightWing, Overall: 90, ContractTerm: 7, Salary: 11.0},
		{ID: "demo-rw-02", FirstName: "Caleb", LastName: "Jansen", Number: 17, Position: player.PositionRightWing, Overall: 82, ContractTerm: 3, Salary: 4.75},
		{ID: "demo-rw-03", FirstName: "Derek", LastName: "Kowal", Number: 27, Position: player.PositionRightWing, Overall: 75, ContractTerm: 2, Salary: 1.5},
		{ID: "demo-rw-04", FirstName: "Sam", LastName: "Lindqvist", Number: 71, Position: player.PositionRightWing, Overall: 66, ContractTerm: 1, Salary: 0.85},
		{ID: "demo-ld-01", FirstName: "Viktor", LastName: "Moreau", Number: 44, Position: player.PositionLeftDefense, Overall: 87, ContractTerm: 6, Salary: 7.5},
		{ID: "demo-ld-02", FirstName: "Aaron", LastName: "Novak", Number: 5, Position: player.PositionLeftDefense, Overall: 79, ContractTerm: 3, Salary: 2.8},
		{ID: "demo-ld-03", FirstName: "Ben", LastName: "Olsen", Number: 55, Position: player.PositionLeftDefense, Overall: 71, ContractTerm: 1, Salary: 1.0},
		{ID: "demo-rd-01", FirstName: "Isak", LastName: "Petrov", Number: 8, Position: player.PositionRightDefense, Overall: 89, ContractTerm: 8, Salary: 9.25},
		{ID: "demo-rd-02", FirstName: "Kyle", LastName: "Quinn", Number: 2, Position: player.PositionRightDefense, Overall: 78, ContractTerm: 2, Salary: 2.3},
		{ID: "demo-rd-03", FirstName: "Matt", LastName: "Roy", Number: 6, Position: player.PositionRightDefense, Overall: 72, ContractTerm: 1, Salary: 0.95},
		{ID: "demo-g-01", FirstName: "Henrik", LastName: "Sorensen", Number: 30, Position: player.PositionGoalie, Overall: 90, ContractTerm: 5, Salary: 8.5},
		{ID: "demo-g-02", FirstName: "Pavel", LastName: "Tichy", Number: 35, Position: player.PositionGoalie, Overall: 76, ContractTerm: 2, Salary: 1.8},
		{ID: "demo-g-03", FirstName: "Colin", LastName: "Umber", Number: 1, Position: player.PositionGoalie, Overall: 64, ContractTerm: 1, Salary: 0.825},
	}
}
