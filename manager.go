package main

import (
	. "pathwerk/util"
)

//**********************************************************
// routing manager
//**********************************************************

// Holds the prepared profiles served by the application.
type RoutingManager struct {
	config   Config
	profiles Dict[string, *RoutingProfile]
}

func NewRoutingManager(config Config) *RoutingManager {
	profiles := NewDict[string, *RoutingProfile](10)
	for name, options := range config.Profiles {
		profiles.Set(name, PrepareProfile(config, name, options))
	}
	return &RoutingManager{
		config:   config,
		profiles: profiles,
	}
}

func (self *RoutingManager) GetProfile(profile string) Optional[*RoutingProfile] {
	if self.profiles.ContainsKey(profile) {
		return Some(self.profiles.Get(profile))
	}
	return None[*RoutingProfile]()
}
