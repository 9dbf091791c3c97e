// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify sends push notifications for prayer activity.

Two events produce notifications:

  - prayer_joined: sent to a request's creator when another device joins
  - new_prayer_request: broadcast to every device with a push token,
    except the creator

Delivery is best effort. Handlers hand work to a Dispatcher with Go and
respond immediately; the Dispatcher builds the messages, fans them out with
bounded concurrency and logs a Report. Wait blocks until background work is
done, which the server calls during shutdown.

ExpoClient talks to an Expo-compatible HTTP gateway. Nop is used when no
gateway is configured.
*/
package notify
