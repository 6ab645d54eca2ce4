package uce

// RequestEvent identifies one transport or cache callback routed to the
// coordinator for a sub-request.
type RequestEvent int

const (
	// RequestEventError reports a local/internal failure.
	RequestEventError RequestEvent = iota + 1
	// RequestEventCommandError reports a command-level failure from the service.
	RequestEventCommandError
	// RequestEventNetworkResponse reports that the SIP response arrived.
	RequestEventNetworkResponse
	// RequestEventCapabilityUpdate reports freshly discovered capabilities.
	RequestEventCapabilityUpdate
	// RequestEventResourceTerminated reports terminated resources.
	RequestEventResourceTerminated
	// RequestEventCachedCapabilityUpdate reports capabilities served from the cache.
	RequestEventCachedCapabilityUpdate
	// RequestEventTerminated reports that the subscription dialog terminated.
	RequestEventTerminated
	// RequestEventNoNeedRequestFromNetwork reports that the whole request was
	// answered from the cache and no network round trip is needed.
	RequestEventNoNeedRequestFromNetwork
)

func (e RequestEvent) String() string {
	switch e {
	case RequestEventError:
		return "error"
	case RequestEventCommandError:
		return "command_error"
	case RequestEventNetworkResponse:
		return "network_response"
	case RequestEventCapabilityUpdate:
		return "capability_update"
	case RequestEventResourceTerminated:
		return "resource_terminated"
	case RequestEventCachedCapabilityUpdate:
		return "cached_capability_update"
	case RequestEventTerminated:
		return "terminated"
	case RequestEventNoNeedRequestFromNetwork:
		return "no_need_request_from_network"
	default:
		return "unknown"
	}
}
