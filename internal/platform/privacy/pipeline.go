package privacy

// Pipeline dispatches a record set through the selected privacy method.
//
// The formal models form a chain: k_anonymity applies the full
// generalization rule set on top of basic stripping, l_diversity wraps
// k_anonymity, t_closeness wraps l_diversity. The diversity and closeness
// passes are enforcement seams that currently pass records through
// unchanged; callers select those methods for the seam, and a future
// implementer can add real enforcement without restructuring the chain.
// Differential privacy is independent of the chain: it strips direct
// identifiers and noises the remaining numeric fields.
type Pipeline struct {
	generalizer *Generalizer
	laplace     *LaplaceMechanism
	epsilon     float64
}

// NewPipeline wires a Pipeline from its mechanisms. A non-positive epsilon
// falls back to DefaultEpsilon.
func NewPipeline(g *Generalizer, l *LaplaceMechanism, epsilon float64) *Pipeline {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Pipeline{generalizer: g, laplace: l, epsilon: epsilon}
}

// Apply anonymizes records under the given method. Unknown methods degrade
// to MethodBasic; this permissive default is deliberate.
func (p *Pipeline) Apply(method Method, records []Record, dataType DataType) []Record {
	switch NormalizeMethod(string(method)) {
	case MethodKAnonymity:
		return p.applyKAnonymity(records, dataType)
	case MethodLDiversity:
		return p.applyLDiversity(records, dataType)
	case MethodTCloseness:
		return p.applyTCloseness(records, dataType)
	case MethodDifferentialPrivacy:
		return p.applyDifferentialPrivacy(records)
	default:
		return p.applyBasic(records)
	}
}

// applyBasic strips direct identifiers only.
func (p *Pipeline) applyBasic(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		c := rec.Clone()
		for _, f := range directIdentifierFields {
			delete(c, f)
		}
		out[i] = c
	}
	return out
}

// applyKAnonymity applies the full generalization rule set (target k=5,
// documented rather than numerically verified).
func (p *Pipeline) applyKAnonymity(records []Record, dataType DataType) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = p.generalizer.Generalize(rec, dataType)
	}
	return out
}

// applyLDiversity runs k_anonymity and then the diversity-enforcement pass
// (target l=3).
func (p *Pipeline) applyLDiversity(records []Record, dataType DataType) []Record {
	return p.enforceDiversity(p.applyKAnonymity(records, dataType))
}

// applyTCloseness runs l_diversity and then the closeness-enforcement pass
// (target t=0.2).
func (p *Pipeline) applyTCloseness(records []Record, dataType DataType) []Record {
	return p.enforceCloseness(p.applyLDiversity(records, dataType))
}

// enforceDiversity is the l-diversity enforcement seam. It is currently a
// pass-through; grouping records by quasi-identifier and suppressing groups
// with fewer than TargetL distinct sensitive values belongs here.
func (p *Pipeline) enforceDiversity(records []Record) []Record {
	return records
}

// enforceCloseness is the t-closeness enforcement seam. It is currently a
// pass-through; bounding the per-group sensitive-value distribution distance
// at TargetT belongs here.
func (p *Pipeline) enforceCloseness(records []Record) []Record {
	return records
}

// applyDifferentialPrivacy strips direct identifiers and then adds Laplace
// noise to every numeric field. Remaining non-numeric fields pass through
// unchanged; no anonymized record ever carries the original subject id.
func (p *Pipeline) applyDifferentialPrivacy(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		c := rec.Clone()
		for _, f := range directIdentifierFields {
			delete(c, f)
		}
		for k, v := range c {
			if f, ok := toFloat(v); ok {
				if _, isString := v.(string); isString {
					// Numeric-looking strings stay textual.
					continue
				}
				c[k] = p.laplace.Perturb(f, p.epsilon)
			}
		}
		out[i] = c
	}
	return out
}
