package html

// CSRFFormScript adds a hidden _csrf field to every POST form on the
// page, copied from the CSRF cookie. API requests set the header from
// app.js instead.
func CSRFFormScript() string {
	return `<script>
(function () {
  function tokenFromCookie() {
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf("X-CSRF-Token=") === 0) {
        return decodeURIComponent(c.substring("X-CSRF-Token=".length));
      }
    }
    return "";
  }

  function stampForms() {
    var token = tokenFromCookie();
    if (!token) return;
    var forms = document.querySelectorAll("form");
    for (var i = 0; i < forms.length; i++) {
      var form = forms[i];
      if ((form.getAttribute("method") || "GET").toUpperCase() !== "POST") continue;
      if (form.querySelector("input[name='_csrf']")) continue;
      var field = document.createElement("input");
      field.type = "hidden";
      field.name = "_csrf";
      field.value = token;
      form.appendChild(field);
    }
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", stampForms);
  } else {
    stampForms();
  }
})();
</script>`
}
