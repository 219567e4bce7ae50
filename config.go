package main

import (
	"encoding/json"
	"errors"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	. "pathwerk/util"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	if config.GraphPath == "" {
		config.GraphPath = "./graphs"
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":5002"
	}
	return config
}

type Config struct {
	// directory containing the stored graph components
	GraphPath string `yaml:"graph-path"`
	// run the preparations even if prepared components exist
	Prepare bool `yaml:"prepare"`
	Server  struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Profiles Dict[string, ProfileOptions] `yaml:"profiles"`
}

//**********************************************************
// profile options
//**********************************************************

type ProfileOptions struct {
	Metric      MetricType    `yaml:"metric"`
	Traversal   TraversalType `yaml:"traversal"`
	Preparation struct {
		Contraction       bool    `yaml:"contraction"`
		Landmarks         int     `yaml:"landmarks"`
		LandmarkMaxWeight float64 `yaml:"landmark-max-weight"`
	} `yaml:"preparation"`
}

//**********************************************************
// enums
//**********************************************************

type MetricType byte

const (
	FASTEST  MetricType = 0
	SHORTEST MetricType = 1
)

func (self MetricType) String() string {
	switch self {
	case FASTEST:
		return "fastest"
	case SHORTEST:
		return "shortest"
	default:
		panic("unknown metric type")
	}
}
func (self MetricType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *MetricType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = MetricTypeFromString(typ)
	return err
}
func (self MetricType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *MetricType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := MetricTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func MetricTypeFromString(s string) (MetricType, error) {
	switch s {
	case "fastest":
		return FASTEST, nil
	case "shortest":
		return SHORTEST, nil
	default:
		return FASTEST, errors.New("unknown metric type")
	}
}

// Node-based traversal ignores turns, edge-based traversal applies the
// stored turn costs and restrictions.
type TraversalType byte

const (
	NODE_BASED TraversalType = 0
	EDGE_BASED TraversalType = 1
)

func (self TraversalType) String() string {
	switch self {
	case NODE_BASED:
		return "node-based"
	case EDGE_BASED:
		return "edge-based"
	default:
		panic("unknown traversal type")
	}
}
func (self TraversalType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TraversalType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = TraversalTypeFromString(typ)
	return err
}
func (self TraversalType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *TraversalType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := TraversalTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func TraversalTypeFromString(s string) (TraversalType, error) {
	switch s {
	case "node-based":
		return NODE_BASED, nil
	case "edge-based":
		return EDGE_BASED, nil
	default:
		return NODE_BASED, errors.New("unknown traversal type")
	}
}
