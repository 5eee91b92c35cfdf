package domain

// ResolvedTarget is one workspace's participation in a run of a given target.
type ResolvedTarget struct {
	Workspace   string
	Affected    bool
	HasCommand  bool
}

// Step is a set of ResolvedTargets executable in parallel under the
// current mode's ordering.
type Step []ResolvedTarget

// OrderedTargets is the full execution plan: a sequence of steps.
type OrderedTargets []Step

// Workspaces returns every workspace name named anywhere in the plan, in
// plan order, for use in FlattenedPlan-style event payloads.
func (ot OrderedTargets) Workspaces() []string {
	var names []string
	for _, step := range ot {
		for _, rt := range step {
			names = append(names, rt.Workspace)
		}
	}
	return names
}

// StepOf returns the index of the step containing the named workspace, or
// -1 if the workspace does not appear in the plan.
func (ot OrderedTargets) StepOf(workspace string) int {
	for i, step := range ot {
		for _, rt := range step {
			if rt.Workspace == workspace {
				return i
			}
		}
	}
	return -1
}
