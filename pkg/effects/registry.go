package effects

// Registry tracks the managers currently running, so the debug overlay can
// list live instances and their particle counts. It is owned by the app and
// passed down through ManagerOptions; nothing here is global.
type Registry struct {
	managers []*Manager
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(m *Manager) {
	r.managers = append(r.managers, m)
}

func (r *Registry) remove(m *Manager) {
	for i, existing := range r.managers {
		if existing == m {
			r.managers = append(r.managers[:i], r.managers[i+1:]...)
			return
		}
	}
}

// InstanceStat is one row of the debug overlay.
type InstanceStat struct {
	Effect   string
	Region   string
	Active   int
	Launched int
}

// Snapshot returns the current per-instance stats in registration order.
func (r *Registry) Snapshot() []InstanceStat {
	stats := make([]InstanceStat, 0, len(r.managers))
	for _, m := range r.managers {
		stats = append(stats, InstanceStat{
			Effect:   m.EffectName(),
			Region:   m.RegionID(),
			Active:   m.ActiveCount(),
			Launched: m.TotalLaunched(),
		})
	}
	return stats
}

// TotalActive sums live particles across every registered instance.
func (r *Registry) TotalActive() int {
	total := 0
	for _, m := range r.managers {
		total += m.ActiveCount()
	}
	return total
}
