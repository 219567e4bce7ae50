package main

import (
	"math"

	"golang.org/x/exp/slog"

	"pathwerk/comps"
	"pathwerk/graph"
	"pathwerk/preproc"
	. "pathwerk/util"
)

//**********************************************************
// profile preparation
//**********************************************************

// Loads the stored graph components of a profile and runs the configured
// preparations.
//
// Prepared components are stored next to the base graph and reused on the
// next start unless a rebuild is forced.
func PrepareProfile(config Config, name string, options ProfileOptions) *RoutingProfile {
	graph_path := config.GraphPath + "/" + name

	slog.Info("Loading graph for profile " + name)
	base := comps.Load[*comps.GraphBase](graph_path + "-base")

	profile := &RoutingProfile{
		name:      name,
		metric:    options.Metric,
		traversal: options.Traversal,
		base:      base,
		index:     comps.NewGraphIndex(base),
	}
	if options.Traversal == EDGE_BASED {
		tc_weight := comps.Load[*comps.TCWeighting](graph_path + "-weight")
		profile.weight = tc_weight
		profile.tc_weight = tc_weight
		profile.g = graph.BuildTCGraph(base, tc_weight)
	} else {
		weight := comps.Load[*comps.DefaultWeighting](graph_path + "-weight")
		profile.weight = weight
		profile.g = graph.BuildGraph(base, weight)
	}
	profile.weight_per_meter = _MinWeightPerMeter(base, profile.weight)

	if options.Preparation.Contraction {
		ch_data := _PrepareContraction(config, graph_path, profile, options)
		profile.ch_g = Some[graph.ICHGraph](graph.BuildCHGraph(base, profile.weight, ch_data))
	}
	if options.Preparation.Landmarks > 0 {
		profile.lm = Some(_PrepareLandmarks(config, graph_path, profile, options))
	}
	return profile
}

func _PrepareContraction(config Config, graph_path string, profile *RoutingProfile, options ProfileOptions) *comps.CH {
	if !config.Prepare && FileExists(graph_path+"-ch") {
		slog.Info("Loading contraction hierarchy for profile " + profile.name)
		return comps.Load[*comps.CH](graph_path + "-ch")
	}
	slog.Info("Building contraction hierarchy for profile " + profile.name)
	var ch_data *comps.CH
	if profile.traversal == EDGE_BASED {
		ch_data = preproc.CalcTCContraction(profile.base, profile.tc_weight)
	} else {
		ch_data = preproc.CalcContraction(profile.base, profile.weight)
	}
	comps.Store(ch_data, graph_path+"-ch")
	return ch_data
}

func _PrepareLandmarks(config Config, graph_path string, profile *RoutingProfile, options ProfileOptions) *comps.Landmarks {
	if !config.Prepare && FileExists(graph_path+"-lm") {
		slog.Info("Loading landmarks for profile " + profile.name)
		return comps.Load[*comps.Landmarks](graph_path + "-lm")
	}
	slog.Info("Building landmarks for profile " + profile.name)
	max_weight := options.Preparation.LandmarkMaxWeight
	if max_weight <= 0 {
		max_weight = DEFAULT_LANDMARK_MAX_WEIGHT
	}
	lm := preproc.CalcLandmarks(profile.base, profile.weight, options.Preparation.Landmarks, max_weight)
	comps.Store(lm, graph_path+"-lm")
	return lm
}

// landmark tables are cut off here to bound the preparation time
const DEFAULT_LANDMARK_MAX_WEIGHT = 100000.0

// Smallest weight per meter over all edges, 0 if any edge carries no
// length (the beeline heuristic then degrades to zero).
func _MinWeightPerMeter(base *comps.GraphBase, weight comps.IWeighting) float64 {
	factor := math.Inf(1)
	for i := 0; i < base.EdgeCount(); i++ {
		length := float64(base.GetEdge(int32(i)).Length)
		if length <= 0 {
			return 0
		}
		f := weight.GetEdgeWeight(int32(i)) / length
		if f < factor {
			factor = f
		}
	}
	if math.IsInf(factor, 1) {
		return 0
	}
	return factor
}
