package resources

import (
	"errors"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/siegeai/cloudmock/persist"
)

var ErrInvalidBody = errors.New("invalid request body")

const (
	fieldLocation          = "location"
	fieldVMSize            = "vm_size"
	fieldProvisioningState = "provisioning_state"
	fieldAddressSpace      = "address_space"
	fieldSku               = "sku"
	fieldKind              = "kind"
)

// Kind is one persisted resource type and the routes that manage it.
type Kind struct {
	Collection string
	Namespace  string
	Service    string
	NameVar    string
	NotFound   string

	decode func(v *fastjson.Value) (persist.Fields, error)
	render func(r persist.Record) any
}

var VirtualMachines = Kind{
	Collection: "virtualMachines",
	Namespace:  "Microsoft.Compute",
	Service:    "compute",
	NameVar:    "vmName",
	NotFound:   "Virtual machine not found",
	decode:     decodeVirtualMachine,
	render:     renderVirtualMachine,
}

var VirtualNetworks = Kind{
	Collection: "virtualNetworks",
	Namespace:  "Microsoft.Network",
	Service:    "networking",
	NameVar:    "virtualNetworkName",
	NotFound:   "Virtual network not found",
	decode:     decodeVirtualNetwork,
	render:     renderVirtualNetwork,
}

var StorageAccounts = Kind{
	Collection: "storageAccounts",
	Namespace:  "Microsoft.Storage",
	Service:    "storage",
	NameVar:    "accountName",
	NotFound:   "Storage account not found",
	decode:     decodeStorageAccount,
	render:     renderStorageAccount,
}

var Kinds = []Kind{VirtualMachines, VirtualNetworks, StorageAccounts}

type VirtualMachine struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ResourceGroup     string `json:"resource_group"`
	Location          string `json:"location"`
	VMSize            string `json:"vm_size"`
	ProvisioningState string `json:"provisioning_state"`
}

type VirtualNetwork struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Location      string `json:"location"`
	AddressSpace  string `json:"address_space"`
}

type StorageAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Location      string `json:"location"`
	Sku           string `json:"sku"`
	Kind          string `json:"kind"`
}

func decodeVirtualMachine(v *fastjson.Value) (persist.Fields, error) {
	loc, err := requiredString(v, "location")
	if err != nil {
		return nil, err
	}
	if err := requireObject(v, "properties"); err != nil {
		return nil, err
	}
	size := "Unknown"
	if s := v.Get("properties", "hardwareProfile", "vmSize"); s != nil && s.Type() == fastjson.TypeString {
		size = string(s.GetStringBytes())
	}
	return persist.Fields{
		fieldLocation:          loc,
		fieldVMSize:            size,
		fieldProvisioningState: "Succeeded",
	}, nil
}

func decodeVirtualNetwork(v *fastjson.Value) (persist.Fields, error) {
	loc, err := requiredString(v, "location")
	if err != nil {
		return nil, err
	}
	if err := requireObject(v, "properties"); err != nil {
		return nil, err
	}
	space := ""
	if s := v.Get("properties", "addressSpace", "addressPrefixes", "0"); s != nil && s.Type() == fastjson.TypeString {
		space = string(s.GetStringBytes())
	}
	return persist.Fields{
		fieldLocation:     loc,
		fieldAddressSpace: space,
	}, nil
}

func decodeStorageAccount(v *fastjson.Value) (persist.Fields, error) {
	loc, err := requiredString(v, "location")
	if err != nil {
		return nil, err
	}
	sku, err := requiredString(v, "sku", "name")
	if err != nil {
		return nil, err
	}
	kind, err := requiredString(v, "kind")
	if err != nil {
		return nil, err
	}
	return persist.Fields{
		fieldLocation: loc,
		fieldSku:      sku,
		fieldKind:     kind,
	}, nil
}

func renderVirtualMachine(r persist.Record) any {
	return VirtualMachine{
		ID:                r.ID,
		Name:              r.Key.Name,
		ResourceGroup:     r.Key.ResourceGroup,
		Location:          r.Fields[fieldLocation],
		VMSize:            r.Fields[fieldVMSize],
		ProvisioningState: r.Fields[fieldProvisioningState],
	}
}

func renderVirtualNetwork(r persist.Record) any {
	return VirtualNetwork{
		ID:            r.ID,
		Name:          r.Key.Name,
		ResourceGroup: r.Key.ResourceGroup,
		Location:      r.Fields[fieldLocation],
		AddressSpace:  r.Fields[fieldAddressSpace],
	}
}

func renderStorageAccount(r persist.Record) any {
	return StorageAccount{
		ID:            r.ID,
		Name:          r.Key.Name,
		ResourceGroup: r.Key.ResourceGroup,
		Location:      r.Fields[fieldLocation],
		Sku:           r.Fields[fieldSku],
		Kind:          r.Fields[fieldKind],
	}
}

type fieldError struct {
	path   string
	reason string
}

func (e *fieldError) Error() string {
	return e.path + ": " + e.reason
}

func (e *fieldError) Is(target error) bool { return target == ErrInvalidBody }

func requiredString(v *fastjson.Value, keys ...string) (string, error) {
	f := v.Get(keys...)
	if f == nil {
		return "", &fieldError{path: strings.Join(keys, "."), reason: "field required"}
	}
	if f.Type() != fastjson.TypeString {
		return "", &fieldError{path: strings.Join(keys, "."), reason: "must be a string"}
	}
	return string(f.GetStringBytes()), nil
}

func requireObject(v *fastjson.Value, key string) error {
	f := v.Get(key)
	if f == nil {
		return &fieldError{path: key, reason: "field required"}
	}
	if f.Type() != fastjson.TypeObject {
		return &fieldError{path: key, reason: "must be an object"}
	}
	return nil
}
