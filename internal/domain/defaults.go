package domain

const (
	DefaultAPIBaseURL = "https://service.narvii.com/api/v1"
	DefaultUserAgent  = "Dalvik/2.1.0 (Linux; U; Android 6.0; LG-UK495 Build/MRA58K; com.narvii.amino.master/2.0.24532)"

	// DefaultDeviceID is a device id known to the service. Profiles fall back
	// to it when no generated id has been registered.
	DefaultDeviceID = "010E4A69D1B3066CA9A127890A5531929F3818F16BA22092D5A91DEFB2CB73F53648E28EFAB98A4B61"
)
