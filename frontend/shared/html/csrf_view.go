package html

// CSRFCookieName must match the cookie set by the HTTP CSRF middleware.
const CSRFCookieName = "X-CSRF-Token"

// CSRFFormScript injects a hidden _csrf field into POST forms and exposes
// postField for inline scratch edits that are sent without a page reload.
func CSRFFormScript() string {
	return `<script>
(function () {
  function getCookie(name) {
    var prefix = name + "=";
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(prefix) === 0) return decodeURIComponent(c.substring(prefix.length));
    }
    return "";
  }

  function inject() {
    var token = getCookie("` + CSRFCookieName + `");
    if (!token) return;
    var forms = document.querySelectorAll("form");
    for (var i = 0; i < forms.length; i++) {
      var form = forms[i];
      if ((form.getAttribute("method") || "GET").toUpperCase() !== "POST") continue;
      if (form.querySelector("input[name='_csrf']")) continue;
      var input = document.createElement("input");
      input.type = "hidden";
      input.name = "_csrf";
      input.value = token;
      form.appendChild(input);
    }
  }

  window.postField = function (url, field, value) {
    var body = new URLSearchParams();
    body.set("field", field);
    body.set("value", value);
    return fetch(url, {
      method: "POST",
      headers: { "X-CSRF-Token": getCookie("` + CSRFCookieName + `") },
      body: body
    });
  };

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", inject);
  } else {
    inject();
  }
})();
</script>`
}
