package types

import "fmt"

// ResourceType classifies a resource by the high byte of its id.
type ResourceType uint8

const (
	ResourceTypeModel          ResourceType = 0x01
	ResourceTypeModelGroup     ResourceType = 0x02
	ResourceTypePalette        ResourceType = 0x04
	ResourceTypeTextureLookup5 ResourceType = 0x05
	ResourceTypeTexture        ResourceType = 0x06
	ResourceTypeTextureLookup8 ResourceType = 0x08
	ResourceTypeStructureGeom  ResourceType = 0x0D
	ResourceTypeUIText         ResourceType = 0x0E
)

var resourceTypeNames = map[ResourceType]string{
	ResourceTypeModel:          "model",
	ResourceTypeModelGroup:     "model-group",
	ResourceTypePalette:        "palette",
	ResourceTypeTextureLookup5: "texture-lookup5",
	ResourceTypeTexture:        "texture",
	ResourceTypeTextureLookup8: "texture-lookup8",
	ResourceTypeStructureGeom:  "structure-geom",
	ResourceTypeUIText:         "ui-text",
}

// ResourceTypeOf returns the type of the resource with the given id.
func ResourceTypeOf(id uint32) ResourceType {
	return ResourceType(id >> 24)
}

// Known reports whether the type is one of the named resource types.
func (t ResourceType) Known() bool {
	_, ok := resourceTypeNames[t]
	return ok
}

// String returns the type name, or the hex type byte for unknown types.
func (t ResourceType) String() string {
	if name, ok := resourceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type-%02x", uint8(t))
}

// ParseResourceType accepts a type name or a hex type byte such as "0x06".
func ParseResourceType(s string) (ResourceType, error) {
	for t, name := range resourceTypeNames {
		if name == s {
			return t, nil
		}
	}

	var b uint8
	if _, err := fmt.Sscanf(s, "0x%x", &b); err == nil {
		return ResourceType(b), nil
	}
	if _, err := fmt.Sscanf(s, "type-%x", &b); err == nil {
		return ResourceType(b), nil
	}

	return 0, fmt.Errorf("unknown resource type: %q", s)
}
