package domain

import "strings"

type visitState int

const (
	unvisited visitState = iota
	onStack
	done
)

// Cycles returns the dependency cycles between issues (atoms) found by a
// depth-first search: an issue depends on every premise atom of the
// arguments concluding it in either polarity. Each back edge yields one
// cycle, listed from the re-entered atom. Traversal follows insertion
// order so the result is deterministic. Cycles are legal input; this is a
// reporting aid and plays no part in evaluation.
func (g *ArgumentGraph) Cycles() [][]string {
	state := make(map[string]visitState, len(g.atoms))
	var stack []string
	var cycles [][]string
	seen := make(map[string]bool)

	var visit func(atom string)
	visit = func(atom string) {
		state[atom] = onStack
		stack = append(stack, atom)
		for _, next := range g.premiseAtoms(atom) {
			switch state[next] {
			case unvisited:
				visit(next)
			case onStack:
				cycle := cycleFrom(stack, next)
				key := canonicalCycleKey(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[atom] = done
	}

	for _, atom := range g.atoms {
		if state[atom] == unvisited {
			visit(atom)
		}
	}
	return cycles
}

// premiseAtoms lists, without duplicates, the atoms that the issue atom
// depends on through the arguments concluding either of its literals.
func (g *ArgumentGraph) premiseAtoms(atom string) []string {
	pos := g.statements[atom]
	var out []string
	seen := make(map[string]bool)
	for _, args := range [][]*Argument{g.ArgumentsFor(pos), g.ArgumentsAgainst(pos)} {
		for _, a := range args {
			for _, p := range a.Premises {
				next := p.Statement.Atom()
				if !seen[next] {
					seen[next] = true
					out = append(out, next)
				}
			}
		}
	}
	return out
}

// AcyclicIssues returns the atoms whose dependency closure contains no
// cycle. Evaluating such an atom never reaches the cycle guard, so its
// acceptability does not depend on the evaluation stack it is reached from.
func (g *ArgumentGraph) AcyclicIssues() map[string]bool {
	tainted := g.cyclicAtoms()
	queue := make([]string, 0, len(tainted))
	for _, atom := range g.atoms {
		if tainted[atom] {
			queue = append(queue, atom)
		}
	}
	// Everything depending on a cyclic atom can reach the cycle too.
	for len(queue) > 0 {
		atom := queue[0]
		queue = queue[1:]
		for _, a := range g.Dependents(g.statements[atom]) {
			up := a.Conclusion.Atom()
			if !tainted[up] {
				tainted[up] = true
				queue = append(queue, up)
			}
		}
	}

	acyclic := make(map[string]bool, len(g.atoms))
	for _, atom := range g.atoms {
		if !tainted[atom] {
			acyclic[atom] = true
		}
	}
	return acyclic
}

// cyclicAtoms returns the atoms lying on a dependency cycle: members of a
// strongly connected component with more than one atom, and atoms that
// depend on themselves. Components are found with Tarjan's algorithm.
func (g *ArgumentGraph) cyclicAtoms() map[string]bool {
	index := make(map[string]int, len(g.atoms))
	low := make(map[string]int, len(g.atoms))
	onStack := make(map[string]bool)
	cyclic := make(map[string]bool)
	var stack []string
	next := 0

	var connect func(atom string)
	connect = func(atom string) {
		index[atom], low[atom] = next, next
		next++
		stack = append(stack, atom)
		onStack[atom] = true

		for _, dep := range g.premiseAtoms(atom) {
			if dep == atom {
				cyclic[atom] = true
			}
			if _, seen := index[dep]; !seen {
				connect(dep)
				low[atom] = min(low[atom], low[dep])
			} else if onStack[dep] {
				low[atom] = min(low[atom], index[dep])
			}
		}

		if low[atom] != index[atom] {
			return
		}
		var component []string
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == atom {
				break
			}
		}
		if len(component) > 1 {
			for _, c := range component {
				cyclic[c] = true
			}
		}
	}

	for _, atom := range g.atoms {
		if _, seen := index[atom]; !seen {
			connect(atom)
		}
	}
	return cyclic
}

func cycleFrom(stack []string, start string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == start {
			cycle := make([]string, len(stack)-i)
			copy(cycle, stack[i:])
			return cycle
		}
	}
	return nil
}

// canonicalCycleKey identifies a cycle independently of its starting point.
func canonicalCycleKey(cycle []string) string {
	if len(cycle) == 0 {
		return ""
	}
	first := 0
	for i, atom := range cycle {
		if atom < cycle[first] {
			first = i
		}
	}
	rotated := append(append([]string{}, cycle[first:]...), cycle[:first]...)
	return strings.Join(rotated, "\x00")
}
