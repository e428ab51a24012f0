package input

import "github.com/soar/XRControllerView/backend/internal/profile"

// DeviceProfile advertises which repository profiles a physical device should
// try, most specific first, and which hand it is bound to. Plain joysticks
// and pads are not handed, so most entries use HandNone.
type DeviceProfile struct {
	Profiles   []string
	Handedness profile.Handedness
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var genericDevice = &DeviceProfile{
	Profiles:   []string{"generic-trigger"},
	Handedness: profile.HandNone,
}

var knownDevices = map[deviceKey]*DeviceProfile{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: {Profiles: []string{"microsoft-xbox360", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	{0x045E, 0x02FF}: {Profiles: []string{"microsoft-xboxone", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	{0x045E, 0x0B12}: {Profiles: []string{"microsoft-xboxseries", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	{0x045E, 0x0B13}: {Profiles: []string{"microsoft-xboxseries", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: {Profiles: []string{"sony-dualsense", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	{0x054C, 0x09CC}: {Profiles: []string{"sony-dualshock4", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	{0x054C, 0x05C4}: {Profiles: []string{"sony-dualshock4", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: {Profiles: []string{"nintendo-switchpro", "generic-thumbstick", "generic-trigger"}, Handedness: profile.HandNone},
}

// GetDeviceProfile returns the profile candidates for a device identified by
// vendor/product ID. Falls back to the generic entry if the device is
// unknown.
func GetDeviceProfile(vendorID, productID uint16) *DeviceProfile {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if d, ok := knownDevices[key]; ok {
		return d
	}
	return genericDevice
}
